package metal

// releaseQueue defers releasing objects until the frames that may still
// reference them on the GPU have completed.
type releaseQueue struct {
	entries []releaseEntry
}

type releaseEntry struct {
	frameIndex int64
	obj        Object
}

func (q *releaseQueue) push(frameIndex int64, obj Object) {
	if obj != 0 {
		q.entries = append(q.entries, releaseEntry{frameIndex: frameIndex, obj: obj})
	}
}

// collect releases every object queued at least numFrames frames before
// frameIndex.
func (q *releaseQueue) collect(dev Device, frameIndex int64, numFrames int) {
	n := 0
	for _, e := range q.entries {
		if frameIndex-e.frameIndex >= int64(numFrames) {
			dev.Release(e.obj)
			continue
		}
		q.entries[n] = e
		n++
	}
	clear(q.entries[n:])
	q.entries = q.entries[:n]
}

func (q *releaseQueue) releaseAll(dev Device) {
	for _, e := range q.entries {
		dev.Release(e.obj)
	}
	q.entries = q.entries[:0]
}

func (q *releaseQueue) len() int { return len(q.entries) }
