//go:build profile

package profiler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSpeedscopeBalancesScopes(t *testing.T) {
	evs := []event{
		{at: 5_000, name: 1}, // close whose open was overwritten
		{at: 10_000, name: 0, open: true},
		{at: 12_000, name: 1, open: true},
		{at: 15_000, name: 1},
		{at: 20_000, name: 2, open: true},
	}
	doc := buildSpeedscope(evs, []string{"frame", "pass", "commit"})
	got := doc.Profiles[0].Events
	require.Len(t, got, 6)
	assert.Equal(t, ssEvent{Type: "O", At: 5, Frame: 0}, got[0])
	assert.Equal(t, ssEvent{Type: "C", At: 10, Frame: 1}, got[2])
	assert.Equal(t, ssEvent{Type: "C", At: 15, Frame: 2}, got[4])
	assert.Equal(t, ssEvent{Type: "C", At: 15, Frame: 0}, got[5])
	assert.Equal(t, int64(15), doc.Profiles[0].EndValue)
	assert.Len(t, doc.Shared.Frames, 3)
}

func TestRingKeepsNewestEvents(t *testing.T) {
	var r eventRing
	r.init(2)
	for i := range 3 {
		r.push(event{at: int64(i)})
	}
	evs := r.snapshot()
	require.Len(t, evs, 2)
	assert.Equal(t, int64(1), evs[0].at)
	assert.Equal(t, int64(2), evs[1].at)
}

func TestWriteSpeedscope(t *testing.T) {
	Init(64)
	end := Start("outer")
	Start("inner")()
	end()

	path := filepath.Join(t.TempDir(), "capture.json")
	require.NoError(t, WriteSpeedscope(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc ssFile
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Profiles[0].Events, 4)
}
