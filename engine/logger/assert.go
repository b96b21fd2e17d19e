package logger

import (
	"fmt"
	"sync/atomic"
)

// AssertMode decides what a failed Assert does.
type AssertMode int32

const (
	// AssertPanic logs at Error level and panics.
	AssertPanic AssertMode = iota
	// AssertLog logs at Error level and lets the caller recover.
	AssertLog
	// AssertIgnore does nothing.
	AssertIgnore
)

var assertMode atomic.Int32

func init() { assertMode.Store(int32(defaultAssertMode)) }

// SetAssertMode overrides the build default (panic unless built with
// -tags release).
func SetAssertMode(m AssertMode) { assertMode.Store(int32(m)) }

func GetAssertMode() AssertMode { return AssertMode(assertMode.Load()) }

// AssertionError is the panic value of a failed assertion.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string { return "assertion failed: " + e.Msg }

// Assert checks a programmer-error precondition. It returns cond so that
// release builds can bail out of the offending call:
//
//	if !logger.Assert(n > 0, "bad count %d", n) {
//		return
//	}
func Assert(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	mode := GetAssertMode()
	if mode == AssertIgnore {
		return false
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	emit(LevelError, Fields{"assert": true}, "%s", []any{msg})
	if mode == AssertPanic {
		panic(&AssertionError{Msg: msg})
	}
	return false
}
