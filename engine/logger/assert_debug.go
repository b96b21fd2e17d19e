//go:build !release

package logger

const defaultAssertMode = AssertPanic
