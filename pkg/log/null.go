package log

// nullLogger discards every message, including fatal ones.
type nullLogger struct{}

func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}
func (nullLogger) Fatal(string)                  {}

// NewNullLogger returns a Logger that discards everything. Components that
// are not given a logger use it.
func NewNullLogger() Logger {
	return nullLogger{}
}
