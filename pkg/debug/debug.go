// Package debug provides conditional stderr logging for lw.
//
// Logging is off by default and switched on with the LW_DEBUG
// environment variable:
//
//	LW_DEBUG=1 lw notes.outline
//
// Disabled calls are cheap no-ops, so call sites stay in place in
// release builds.
package debug

import (
	"log"
	"os"
	"time"
)

var sink *log.Logger

func init() {
	if os.Getenv("LW_DEBUG") != "" {
		sink = newSink()
	}
}

func newSink() *log.Logger {
	return log.New(os.Stderr, "[LW_DEBUG] ", log.Ltime|log.Lmicroseconds)
}

// Enabled reports whether debug logging is active.
func Enabled() bool { return sink != nil }

// SetEnabled switches debug logging on or off at runtime, regardless of
// the environment.
func SetEnabled(on bool) {
	if on {
		if sink == nil {
			sink = newSink()
		}
		return
	}
	sink = nil
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	if sink != nil {
		sink.Printf(format, args...)
	}
}

// LogTiming records how long a named step took.
func LogTiming(name string, d time.Duration) {
	if sink != nil {
		sink.Printf("%s took %v", name, d)
	}
}

// LogEnterExit marks entry to a function and returns the matching exit
// logger, for use with defer:
//
//	defer debug.LogEnterExit("reload")()
func LogEnterExit(name string) func() {
	if sink == nil {
		return func() {}
	}
	sink.Printf("enter %s", name)
	start := time.Now()
	return func() {
		sink.Printf("exit %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value with its dynamic type, for poking at larger structs.
func Dump(name string, v any) {
	if sink != nil {
		sink.Printf("%s: %T = %+v", name, v, v)
	}
}
