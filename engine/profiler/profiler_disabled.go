//go:build !profile

package profiler

// Enabled reports whether scopes are recorded. Build with -tags profile.
const Enabled = false

func Init(capacity int) {}

func Start(name string) func() { return func() {} }

func WriteSpeedscope(path string) error { return nil }
