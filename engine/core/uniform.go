package core

import (
	"hash/fnv"

	"github.com/hubastard/prism/engine/logger"
)

// UniformType is the data type of one uniform in a uniform block.
type UniformType uint8

const (
	UniformFloat UniformType = iota
	UniformVec2
	UniformVec3
	UniformVec4
	UniformMat2
	UniformMat3
	UniformMat4
	UniformInt
	UniformBool
	NumUniformTypes

	InvalidUniformType UniformType = 0xFF
)

var uniformTypeNames = [NumUniformTypes]string{
	"float", "vec2", "vec3", "vec4", "mat2", "mat3", "mat4", "int", "bool",
}

func (t UniformType) String() string {
	if t < NumUniformTypes {
		return uniformTypeNames[t]
	}
	return "invalid"
}

// ParseUniformType is the inverse of String.
func ParseUniformType(s string) UniformType {
	for i, n := range uniformTypeNames {
		if n == s {
			return UniformType(i)
		}
	}
	return InvalidUniformType
}

func (t UniformType) ByteSize() int {
	switch t {
	case UniformFloat, UniformInt, UniformBool:
		return 4
	case UniformVec2:
		return 8
	case UniformVec3:
		return 12
	case UniformVec4, UniformMat2:
		return 16
	case UniformMat3:
		return 36
	case UniformMat4:
		return 64
	}
	return 0
}

// UniformComponent is one named uniform inside a block.
type UniformComponent struct {
	Name   string
	Type   UniformType
	Offset int
}

// UniformBlockLayout describes the names and types of a group of uniforms
// that are updated together. TypeHash is checked against the caller's hash
// in ApplyUniformBlock to catch struct layout drift.
type UniformBlockLayout struct {
	TypeHash uint64
	comps    []UniformComponent
	byteSize int
}

// Add appends a uniform and updates TypeHash.
func (l *UniformBlockLayout) Add(name string, t UniformType) *UniformBlockLayout {
	if !logger.Assert(name != "" && t < NumUniformTypes, "uniform block layout: bad component %q", name) {
		return l
	}
	// copies of a layout must not share the component array
	l.comps = append(l.comps[:len(l.comps):len(l.comps)], UniformComponent{Name: name, Type: t, Offset: l.byteSize})
	l.byteSize += t.ByteSize()
	l.TypeHash = l.hash()
	return l
}

func (l *UniformBlockLayout) Clear() { *l = UniformBlockLayout{} }

func (l UniformBlockLayout) Empty() bool                        { return len(l.comps) == 0 }
func (l UniformBlockLayout) NumComponents() int                 { return len(l.comps) }
func (l UniformBlockLayout) ComponentAt(i int) UniformComponent { return l.comps[i] }
func (l UniformBlockLayout) ComponentByteOffset(i int) int      { return l.comps[i].Offset }
func (l UniformBlockLayout) ByteSize() int                      { return l.byteSize }

func (l UniformBlockLayout) hash() uint64 {
	h := fnv.New64a()
	for _, c := range l.comps {
		h.Write([]byte(c.Name))
		h.Write([]byte{0, byte(c.Type)})
	}
	return h.Sum64()
}
