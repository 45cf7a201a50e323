package formatter

import (
	"encoding/xml"

	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/record"
)

// xmlRecord is the UDP wire dialect spec.md §6 leaves to the appender to
// define. encoding/xml is the standard library because no third-party
// XML marshaler appears anywhere in the retrieval pack (see DESIGN.md).
type xmlRecord struct {
	XMLName xml.Name  `xml:"record"`
	Time    string    `xml:"time,attr"`
	Level   string    `xml:"level,attr"`
	Logger  string    `xml:"logger,attr"`
	Message string    `xml:"message"`
	Fields  []xmlPair `xml:"field,omitempty"`
}

type xmlPair struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// XMLFormatter renders a structured-log XML dialect intended for the UDP
// appender: one <record> element per message, with KeyString-tagged
// arguments carried as <field> children.
type XMLFormatter struct{}

func NewXMLFormatter() *XMLFormatter { return &XMLFormatter{} }

func (f *XMLFormatter) Format(rec *record.Record, cfg Config) (appender.LoggedMessage, error) {
	cfg = cfg.withDefaults()

	body, pairs := "", []KV(nil)
	if rec.Constant != "" {
		body = rec.Constant
	} else {
		body, pairs = FormatKeyValue(rec.Enc.Bytes(), rec.Enc.Refs(), cfg.NullDisplayString, cfg.Types)
		if rec.Truncated() {
			body += cfg.TruncatedMessageSuffix
		}
	}

	xr := xmlRecord{
		Time:    rec.Timestamp.Format("2006-01-02T15:04:05.000000000Z07:00"),
		Level:   rec.Level.String(),
		Logger:  rec.LoggerName,
		Message: body,
	}
	for _, kv := range pairs {
		xr.Fields = append(xr.Fields, xmlPair{Key: kv.Key, Value: kv.Value})
	}

	out, err := xml.Marshal(xr)
	if err != nil {
		return appender.LoggedMessage{}, err
	}
	out = append(out, '\n')
	return appender.LoggedMessage{
		Text:       out,
		Level:      int8(rec.Level),
		LoggerName: rec.LoggerName,
		Time:       rec.Timestamp,
	}, nil
}
