package resource

type slot[T any] struct {
	generation uint16
	state      State
	res        T
}

// Pool is a fixed-capacity slot table for one resource kind. Released slots
// go on a LIFO free list so recently freed slots (and their bumped
// generations) are reused first.
//
// A Pool is not safe for concurrent use.
type Pool[T any] struct {
	typ         Type
	slots       []slot[T]
	free        []uint16
	placeholder Id
}

// NewPool creates a pool of the given capacity for resources of type typ.
func NewPool[T any](typ Type, capacity int) *Pool[T] {
	if capacity <= 0 {
		capacity = 1
	}
	if capacity > 0xFFFF {
		capacity = 0xFFFF
	}
	p := &Pool[T]{
		typ:         typ,
		slots:       make([]slot[T], capacity),
		free:        make([]uint16, capacity),
		placeholder: InvalidId,
	}
	// slot 0 is popped first
	for i := range p.free {
		p.free[i] = uint16(capacity - 1 - i)
	}
	return p
}

func (p *Pool[T]) Type() Type    { return p.typ }
func (p *Pool[T]) Capacity() int { return len(p.slots) }
func (p *Pool[T]) NumFree() int  { return len(p.free) }
func (p *Pool[T]) NumUsed() int  { return len(p.slots) - len(p.free) }

// Create allocates a slot, zeroes its record and puts it into StateSetup.
func (p *Pool[T]) Create() (Id, error) {
	n := len(p.free)
	if n == 0 {
		return InvalidId, ErrPoolExhausted
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	s := &p.slots[idx]
	var zero T
	s.res = zero
	s.state = StateSetup
	return Id{Type: p.typ, Slot: idx, Generation: s.generation}, nil
}

func (p *Pool[T]) live(id Id) *slot[T] {
	if id.Type != p.typ || int(id.Slot) >= len(p.slots) {
		return nil
	}
	s := &p.slots[id.Slot]
	if s.generation != id.Generation || s.state == StateInitial {
		return nil
	}
	return s
}

// Slot returns the record behind id regardless of its state, or nil if id is
// stale. Used while the resource is being set up.
func (p *Pool[T]) Slot(id Id) *T {
	if s := p.live(id); s != nil {
		return &s.res
	}
	return nil
}

// SetState changes the lifecycle state of a live resource.
func (p *Pool[T]) SetState(id Id, st State) bool {
	s := p.live(id)
	if s == nil {
		return false
	}
	s.state = st
	return true
}

// State returns the lifecycle state, StateInvalid for stale ids.
func (p *Pool[T]) State(id Id) State {
	if s := p.live(id); s != nil {
		return s.state
	}
	return StateInvalid
}

// Contains reports whether id refers to a live slot.
func (p *Pool[T]) Contains(id Id) bool { return p.live(id) != nil }

// SetPlaceholder registers the resource that stands in for pending ones.
func (p *Pool[T]) SetPlaceholder(id Id) { p.placeholder = id }

// Placeholder returns the registered placeholder id.
func (p *Pool[T]) Placeholder() Id { return p.placeholder }

// Lookup returns the renderable record behind id: the resource itself when
// valid, the placeholder while it is pending, nil otherwise.
func (p *Pool[T]) Lookup(id Id) *T {
	s := p.live(id)
	if s == nil {
		return nil
	}
	switch s.state {
	case StateValid:
		return &s.res
	case StatePending:
		if ph := p.live(p.placeholder); ph != nil && ph.state == StateValid {
			return &ph.res
		}
	}
	return nil
}

// Destroy releases the resource behind id. release (which may be nil) is
// called with the record before the slot is cleared. Stale ids are a no-op,
// so destroying twice is harmless.
func (p *Pool[T]) Destroy(id Id, release func(*T)) bool {
	s := p.live(id)
	if s == nil {
		return false
	}
	if release != nil {
		release(&s.res)
	}
	var zero T
	s.res = zero
	s.state = StateInitial
	s.generation++
	if s.generation == invalidGeneration {
		s.generation = 0
	}
	p.free = append(p.free, id.Slot)
	if p.placeholder == id {
		p.placeholder = InvalidId
	}
	return true
}

// Each calls fn for every live resource.
func (p *Pool[T]) Each(fn func(id Id, st State, res *T)) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.state == StateInitial {
			continue
		}
		fn(Id{Type: p.typ, Slot: uint16(i), Generation: s.generation}, s.state, &s.res)
	}
}
