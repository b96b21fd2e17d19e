package scratch

import (
	"encoding/binary"
	"math"
)

// Arena is a bump allocator over one reusable byte buffer (single-threaded
// usage). Allocations stay valid until the next Clear or until a Free
// rolls the arena back past them.
type Arena struct {
	buf    []byte
	allocs int
}

// NewArena creates an arena with an initial capacity.
// Example: scratch.NewArena(4 * 1024)
func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Arena{buf: make([]byte, 0, capacity)}
}

// Alloc returns n zeroed bytes. The arena grows (once, amortized) if
// capacity is insufficient; slices returned before a grow keep pointing at
// the old storage and stay valid.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	a.Ensure(n)
	start := len(a.buf)
	a.buf = a.buf[:start+n]
	b := a.buf[start : start+n : start+n]
	clear(b)
	a.allocs++
	return b
}

// AllocAligned is Alloc with the start offset rounded up to align.
func (a *Arena) AllocAligned(n, align int) []byte {
	pad := RoundUp(len(a.buf), align) - len(a.buf)
	if pad > 0 {
		a.Ensure(pad + n)
		a.buf = a.buf[:len(a.buf)+pad]
	}
	return a.Alloc(n)
}

// Free releases b if it is the most recent allocation; anything else is
// reclaimed by Clear.
func (a *Arena) Free(b []byte) {
	if len(b) == 0 || len(a.buf) < len(b) {
		return
	}
	start := len(a.buf) - len(b)
	if &a.buf[start] == &b[0] {
		a.buf = a.buf[:start]
		a.allocs--
	}
}

// Clear drops all allocations without freeing memory.
// Call this once per frame.
func (a *Arena) Clear() {
	a.buf = a.buf[:0]
	a.allocs = 0
}

// Cap returns the current capacity. Useful for tuning.
func (a *Arena) Cap() int { return cap(a.buf) }

// Len returns the number of bytes handed out since the last Clear.
func (a *Arena) Len() int { return len(a.buf) }

// NumAllocs returns the number of live allocations.
func (a *Arena) NumAllocs() int { return a.allocs }

// Mark returns a bookmark to later roll back to.
func (a *Arena) Mark() int { return len(a.buf) }

// Release rolls the arena back to a mark.
func (a *Arena) Release(mark int) {
	if mark >= 0 && mark <= len(a.buf) {
		a.buf = a.buf[:mark]
	}
}

// GrowTo increases capacity (and copies current contents) if needed.
// Prefer calling this during load, not every frame.
func (a *Arena) GrowTo(minCapacity int) {
	if minCapacity <= cap(a.buf) {
		return
	}
	nb := make([]byte, len(a.buf), minCapacity)
	copy(nb, a.buf)
	a.buf = nb
}

// Ensure ensures there is room for at least n more bytes.
func (a *Arena) Ensure(n int) {
	if len(a.buf)+n > cap(a.buf) {
		newCap := cap(a.buf) * 2
		if newCap < len(a.buf)+n {
			newCap = len(a.buf) + n
		}
		a.GrowTo(newCap)
	}
}

// Float32s allocates len(v)*4 bytes holding v in little-endian order.
func (a *Arena) Float32s(v ...float32) []byte {
	b := a.Alloc(len(v) * 4)
	PutFloat32s(b, v)
	return b
}

// Uint16s allocates len(v)*2 bytes holding v in little-endian order.
func (a *Arena) Uint16s(v ...uint16) []byte {
	b := a.Alloc(len(v) * 2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(b[i*2:], x)
	}
	return b
}

// RoundUp rounds n up to the next multiple of align (a power of two).
func RoundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

// PutFloat32s writes v into dst in little-endian order.
func PutFloat32s(dst []byte, v []float32) {
	for i, x := range v {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(x))
	}
}

// Float32sFrom decodes little-endian float32 values from src into dst and
// returns the filled part of dst.
func Float32sFrom(dst []float32, src []byte) []float32 {
	n := len(src) / 4
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return dst
}

// ----- package-level default arena -----

var def = NewArena(1024)

// Init replaces the default arena. Call once at startup.
func Init(capacity int) { def = NewArena(capacity) }

// Default returns the package-level arena.
func Default() *Arena { return def }

func Alloc(n int) []byte { return def.Alloc(n) }
func Free(b []byte)      { def.Free(b) }
func Clear()             { def.Clear() }
