package resource

import (
	"errors"
	"fmt"
)

// Type tags an Id with the kind of resource it refers to. The values are
// owned by the package that defines the resource kinds.
type Type uint8

// InvalidType is the type of InvalidId.
const InvalidType Type = 0xFF

// Id is an opaque resource handle. It only refers to a live resource while
// the pool slot at Slot still carries the same Generation.
type Id struct {
	Type       Type
	Slot       uint16
	Generation uint16
}

const invalidGeneration uint16 = 0xFFFF

// InvalidId never resolves to a resource.
var InvalidId = Id{Type: InvalidType, Slot: 0xFFFF, Generation: invalidGeneration}

// IsValid reports whether id could refer to a resource. Whether it still
// does is up to the pool.
func (id Id) IsValid() bool {
	return id.Type != InvalidType && id.Generation != invalidGeneration
}

func (id Id) String() string {
	if !id.IsValid() {
		return "Id(invalid)"
	}
	return fmt.Sprintf("Id(type=%d slot=%d gen=%d)", id.Type, id.Slot, id.Generation)
}

// State is the lifecycle state of a pooled resource.
type State uint8

const (
	StateInitial State = iota
	StateSetup
	StatePending
	StateValid
	StateFailed
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateSetup:
		return "setup"
	case StatePending:
		return "pending"
	case StateValid:
		return "valid"
	case StateFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// Label groups resources for bulk destruction.
type Label uint32

const (
	// DefaultLabel is active while no label is pushed.
	DefaultLabel Label = 0x7FFFFFFF
	InvalidLabel Label = 0xFFFFFFFF
)

var (
	ErrPoolExhausted = errors.New("resource: pool exhausted")
	ErrLabelStack    = errors.New("resource: label stack underflow")
)
