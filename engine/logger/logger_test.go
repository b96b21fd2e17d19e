package logger

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	level  Level
	msg    string
	fields Fields
}

type recorder struct{ recs []record }

func (r *recorder) Log(level Level, msg string, fields Fields) {
	r.recs = append(r.recs, record{level, msg, fields})
}

func reset(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		ClearLoggers()
		SetLevel(LevelDbg)
		SetAssertMode(defaultAssertMode)
	})
}

func TestRegisteredLoggersReceiveMessages(t *testing.T) {
	reset(t)
	a, b := &recorder{}, &recorder{}
	AddLogger(a)
	AddLogger(b)
	require.Equal(t, 2, NumLoggers())

	Warn("texture %d failed\n", 7)

	for _, r := range []*recorder{a, b} {
		require.Len(t, r.recs, 1)
		assert.Equal(t, LevelWarn, r.recs[0].level)
		assert.Equal(t, "texture 7 failed", r.recs[0].msg)
	}
}

func TestLevelFilter(t *testing.T) {
	reset(t)
	r := &recorder{}
	AddLogger(r)
	SetLevel(LevelWarn)

	Dbg("dbg")
	Info("info")
	Warn("warn")
	Error("error")

	require.Len(t, r.recs, 2)
	assert.Equal(t, LevelWarn, r.recs[0].level)
	assert.Equal(t, LevelError, r.recs[1].level)

	SetLevel(LevelNone)
	Error("dropped")
	assert.Len(t, r.recs, 2)
}

func TestStructuredFields(t *testing.T) {
	reset(t)
	r := &recorder{}
	AddLogger(r)

	With(Fields{"slot": 3, "type": "mesh"}).Info("created")

	require.Len(t, r.recs, 1)
	assert.Equal(t, 3, r.recs[0].fields["slot"])
	assert.Equal(t, "slot=3 type=mesh", FormatFields(r.recs[0].fields))
}

func TestLogrusAdapter(t *testing.T) {
	reset(t)
	l, hook := test.NewNullLogger()
	l.Level = log.TraceLevel
	AddLogger(NewLogrusLogger(l))

	Error("device lost")
	Dbg("frame %d", 2)

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, log.ErrorLevel, hook.Entries[0].Level)
	assert.Equal(t, "device lost", hook.Entries[0].Message)
	assert.Equal(t, log.DebugLevel, hook.Entries[1].Level)
}

func TestConsoleFallback(t *testing.T) {
	reset(t)
	hook := test.NewLocal(console)
	defer hook.Reset()

	Info("no loggers")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "no loggers", hook.LastEntry().Message)
}

func TestAssertModes(t *testing.T) {
	reset(t)
	r := &recorder{}
	AddLogger(r)

	assert.True(t, Assert(true, "never"))

	SetAssertMode(AssertPanic)
	assert.PanicsWithError(t, "assertion failed: bad 1", func() { Assert(false, "bad %d", 1) })

	SetAssertMode(AssertLog)
	assert.False(t, Assert(false, "soft"))
	require.NotEmpty(t, r.recs)
	assert.Equal(t, "soft", r.recs[len(r.recs)-1].msg)

	n := len(r.recs)
	SetAssertMode(AssertIgnore)
	assert.False(t, Assert(false, "quiet"))
	assert.Len(t, r.recs, n)
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelNone, LevelError, LevelWarn, LevelInfo, LevelDbg} {
		got, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
