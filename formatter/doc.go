// Package formatter renders records into the bytes appenders write.
//
// The prefix pattern ("%date %time %level %logger %thread ...") is
// parsed once into a sequence of literal chunks and tokens, then
// evaluated per message; see pattern.go. The argument stream produced
// by package wire is walked in one of three decode modes — Formatted,
// Unformatted, or KeyValue — by the functions in decode.go.
//
// Built-in formatters:
//
//   - TextFormatter writes the prefix pattern followed by a Formatted
//     decode of the argument stream.
//   - JSONFormatter writes one JSON object per record, using the
//     KeyValue decode mode to split the stream into a message body and
//     structured fields.
//   - XMLFormatter renders the same split into the XML dialect the UDP
//     appender sends.
//
// TextFormatter and JSONFormatter share a pooled bytes.Buffer
// (formatter.go's bufferPool); buffers larger than 64 KiB are not
// returned to the pool. XMLFormatter renders through xml.Marshal.
package formatter
