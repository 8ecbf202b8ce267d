package log

import (
	"fmt"
	"io"
	"os"
)

// Logger is the logging interface shared by every component of the
// emulator.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	w     io.Writer
	debug bool
}

// New returns a Logger writing to stdout. Debug messages are discarded
// unless debug is set.
func New(debug bool) Logger {
	return &logger{w: os.Stdout, debug: debug}
}

// NewWriter returns a Logger writing to w.
func NewWriter(w io.Writer, debug bool) Logger {
	return &logger{w: w, debug: debug}
}

func (l *logger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "[INFO]\t"+format+"\n", args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "[ERROR]\t"+format+"\n", args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	fmt.Fprintf(l.w, "[DEBUG]\t"+format+"\n", args...)
}

// Fatal logs str and exits the process.
func (l *logger) Fatal(str string) {
	fmt.Fprintf(l.w, "[FATAL]\t%s\n", str)
	os.Exit(1)
}
