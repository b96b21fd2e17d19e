//go:build release

package logger

// Release builds degrade assertions to error logs.
const defaultAssertMode = AssertLog
