package core

import (
	"hash/fnv"

	"github.com/hubastard/prism/engine/logger"
)

// VertexFormat is the data format of one vertex component.
type VertexFormat uint8

const (
	VertexFloat VertexFormat = iota
	VertexFloat2
	VertexFloat3
	VertexFloat4
	VertexByte4
	VertexByte4N
	VertexUByte4
	VertexUByte4N
	VertexShort2
	VertexShort2N
	VertexShort4
	VertexShort4N
	VertexUInt10_2N
	NumVertexFormats

	InvalidVertexFormat VertexFormat = 0xFF
)

var vertexFormatNames = [NumVertexFormats]string{
	"Float", "Float2", "Float3", "Float4",
	"Byte4", "Byte4N", "UByte4", "UByte4N",
	"Short2", "Short2N", "Short4", "Short4N",
	"UInt10_2N",
}

func (f VertexFormat) String() string {
	if f < NumVertexFormats {
		return vertexFormatNames[f]
	}
	return "Invalid"
}

// ParseVertexFormat is the inverse of String.
func ParseVertexFormat(s string) VertexFormat {
	for i, n := range vertexFormatNames {
		if n == s {
			return VertexFormat(i)
		}
	}
	return InvalidVertexFormat
}

// ByteSize returns the size of one component in this format.
func (f VertexFormat) ByteSize() int {
	switch f {
	case VertexFloat:
		return 4
	case VertexFloat2:
		return 8
	case VertexFloat3:
		return 12
	case VertexFloat4:
		return 16
	case VertexByte4, VertexByte4N, VertexUByte4, VertexUByte4N,
		VertexShort2, VertexShort2N, VertexUInt10_2N:
		return 4
	case VertexShort4, VertexShort4N:
		return 8
	}
	return 0
}

// VertexAttr names the semantic of a vertex component. The values have no
// hardwired meaning beyond matching mesh components to shader inputs.
type VertexAttr uint8

const (
	AttrPosition VertexAttr = iota
	AttrNormal
	AttrTexCoord0
	AttrTexCoord1
	AttrTexCoord2
	AttrTexCoord3
	AttrTangent
	AttrBinormal
	AttrWeights
	AttrIndices
	AttrColor0
	AttrColor1
	AttrInstance0
	AttrInstance1
	AttrInstance2
	AttrInstance3
	NumVertexAttrs

	InvalidVertexAttr VertexAttr = 0xFF
)

var vertexAttrNames = [NumVertexAttrs]string{
	"position", "normal",
	"texcoord0", "texcoord1", "texcoord2", "texcoord3",
	"tangent", "binormal", "weights", "indices",
	"color0", "color1",
	"instance0", "instance1", "instance2", "instance3",
}

// String returns the shader-side attribute name, e.g. "texcoord0".
func (a VertexAttr) String() string {
	if a < NumVertexAttrs {
		return vertexAttrNames[a]
	}
	return "invalid"
}

// ParseVertexAttr is the inverse of String.
func ParseVertexAttr(s string) VertexAttr {
	for i, n := range vertexAttrNames {
		if n == s {
			return VertexAttr(i)
		}
	}
	return InvalidVertexAttr
}

// VertexComponent is one attribute of a vertex and its byte offset within
// the vertex.
type VertexComponent struct {
	Attr   VertexAttr
	Format VertexFormat
	Offset int
}

func (c VertexComponent) ByteSize() int { return c.Format.ByteSize() }

// VertexLayout describes the packing of a vertex in a vertex buffer.
// Components are packed tightly in the order they were added. The zero value
// is an empty per-vertex layout.
type VertexLayout struct {
	StepFunction VertexStepFunction
	StepRate     int

	comps    [MaxNumVertexLayoutComponents]VertexComponent
	num      int
	byteSize int
}

// NewVertexLayout returns a layout holding comps in order.
func NewVertexLayout(comps ...VertexComponent) VertexLayout {
	var l VertexLayout
	for _, c := range comps {
		l.Add(c.Attr, c.Format)
	}
	return l
}

// Clear resets the layout to an empty per-vertex layout.
func (l *VertexLayout) Clear() *VertexLayout {
	*l = VertexLayout{}
	return l
}

func (l *VertexLayout) Empty() bool { return l.num == 0 }

// Add appends a component. Exceeding the component capacity, adding an
// attribute twice or growing the stride past MaxVertexStride are
// programmer errors.
func (l *VertexLayout) Add(attr VertexAttr, format VertexFormat) *VertexLayout {
	if !logger.Assert(l.num < MaxNumVertexLayoutComponents, "vertex layout: too many components") {
		return l
	}
	if !logger.Assert(attr < NumVertexAttrs && !l.Contains(attr), "vertex layout: invalid or duplicate attr %s", attr) {
		return l
	}
	size := format.ByteSize()
	if !logger.Assert(l.byteSize+size < MaxVertexStride, "vertex layout: stride %d exceeds %d", l.byteSize+size, MaxVertexStride) {
		return l
	}
	l.comps[l.num] = VertexComponent{Attr: attr, Format: format, Offset: l.byteSize}
	l.byteSize += size
	l.num++
	return l
}

// Append adds all components of other. Attribute collisions are
// programmer errors.
func (l *VertexLayout) Append(other VertexLayout) *VertexLayout {
	for i := 0; i < other.num; i++ {
		c := other.comps[i]
		l.Add(c.Attr, c.Format)
	}
	return l
}

// EnableInstancing makes the layout advance per instance.
func (l *VertexLayout) EnableInstancing() *VertexLayout {
	l.StepFunction = StepPerInstance
	l.StepRate = 1
	return l
}

// Rate returns the step rate, treating the zero value as 1.
func (l VertexLayout) Rate() int {
	if l.StepRate < 1 {
		return 1
	}
	return l.StepRate
}

func (l VertexLayout) NumComponents() int                { return l.num }
func (l VertexLayout) ComponentAt(i int) VertexComponent { return l.comps[i] }
func (l VertexLayout) ComponentByteOffset(i int) int     { return l.comps[i].Offset }
func (l VertexLayout) ByteSize() int                     { return l.byteSize }
func (l VertexLayout) Components() []VertexComponent     { return l.comps[:l.num] }
func (l VertexLayout) Contains(attr VertexAttr) bool     { return l.ComponentIndexByVertexAttr(attr) >= 0 }

// ComponentIndexByVertexAttr returns the index of attr's component, or -1.
func (l VertexLayout) ComponentIndexByVertexAttr(attr VertexAttr) int {
	for i := 0; i < l.num; i++ {
		if l.comps[i].Attr == attr {
			return i
		}
	}
	return -1
}

// Hash identifies the layout's attributes, formats and step function.
// Layouts built from the same components hash equal.
func (l VertexLayout) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 2*l.num+2)
	for i := 0; i < l.num; i++ {
		buf = append(buf, byte(l.comps[i].Attr), byte(l.comps[i].Format))
	}
	buf = append(buf, byte(l.StepFunction), byte(l.Rate()))
	h.Write(buf)
	return h.Sum64()
}

// CombinedHash hashes a pair of layouts, used to cache mesh/shader input
// matches.
func CombinedHash(l0, l1 VertexLayout) uint64 {
	const prime = 1099511628211
	return l0.Hash()*prime ^ l1.Hash()
}
