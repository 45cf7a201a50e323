package benchmark

import "github.com/kdevops/pulselog/appender"

// discardAppender is a no-op appender.Appender: it throws away every
// message it's handed, so a benchmark measures the pipeline's own
// overhead rather than any sink's I/O cost.
type discardAppender struct{}

func (discardAppender) Write(appender.LoggedMessage) error { return nil }
func (discardAppender) Flush() error                        { return nil }
func (discardAppender) Close() error                        { return nil }
func (discardAppender) SetEncoding(string) error             { return nil }
