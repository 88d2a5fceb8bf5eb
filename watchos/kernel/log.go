package kernel

import (
	"fmt"

	"brass/hal"
)

// Log is a leveled front end for hal.Logger. The zero value discards everything.
type Log struct {
	out   hal.Logger
	debug bool
}

// NewLog returns a Log writing to out. Debug lines are kept only when debug is set.
func NewLog(out hal.Logger, debug bool) Log {
	return Log{out: out, debug: debug}
}

func (l Log) DebugEnabled() bool { return l.debug && l.out != nil }

func (l Log) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.write("debug: ", format, args)
}

func (l Log) Infof(format string, args ...any) { l.write("info: ", format, args) }

func (l Log) Warnf(format string, args ...any) { l.write("warn: ", format, args) }

func (l Log) write(prefix, format string, args []any) {
	if l.out == nil {
		return
	}
	l.out.WriteLineString(prefix + fmt.Sprintf(format, args...))
}
