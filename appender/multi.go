package appender

import "go.uber.org/multierr"

// Multi fans a write out to every child appender, continuing past
// individual failures and aggregating them with go.uber.org/multierr —
// adapted from the teacher's handler.MultiHandler, which fanned an
// entry out the same way but returned only the last error.
type Multi struct {
	children []Appender
}

// NewMulti returns an appender that forwards to every child in order.
func NewMulti(children ...Appender) *Multi {
	return &Multi{children: children}
}

func (m *Multi) Write(msg LoggedMessage) error {
	var err error
	for _, c := range m.children {
		err = multierr.Append(err, c.Write(msg))
	}
	return err
}

func (m *Multi) Flush() error {
	var err error
	for _, c := range m.children {
		err = multierr.Append(err, c.Flush())
	}
	return err
}

func (m *Multi) Close() error {
	var err error
	for _, c := range m.children {
		err = multierr.Append(err, c.Close())
	}
	return err
}

func (m *Multi) SetEncoding(enc string) error {
	var err error
	for _, c := range m.children {
		err = multierr.Append(err, c.SetEncoding(enc))
	}
	return err
}

// Children returns the wrapped appenders, for resolver bookkeeping that
// needs to enumerate unique instances reachable from a tree.
func (m *Multi) Children() []Appender { return m.children }
