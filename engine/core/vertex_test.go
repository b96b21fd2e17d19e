package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/prism/engine/logger"
)

func TestVertexLayoutPacking(t *testing.T) {
	var l VertexLayout
	l.Add(AttrPosition, VertexFloat3).Add(AttrNormal, VertexUByte4N).Add(AttrTexCoord0, VertexFloat2)

	require.Equal(t, 3, l.NumComponents())
	assert.Equal(t, 24, l.ByteSize())
	assert.Equal(t, 0, l.ComponentByteOffset(0))
	assert.Equal(t, 12, l.ComponentByteOffset(1))
	assert.Equal(t, 16, l.ComponentByteOffset(2))

	for i := 0; i < l.NumComponents(); i++ {
		c := l.ComponentAt(i)
		assert.LessOrEqual(t, c.Offset+c.ByteSize(), l.ByteSize())
	}
	assert.Equal(t, 1, l.ComponentIndexByVertexAttr(AttrNormal))
	assert.Equal(t, -1, l.ComponentIndexByVertexAttr(AttrColor0))
	assert.True(t, l.Contains(AttrTexCoord0))
}

func TestVertexLayoutHash(t *testing.T) {
	a := NewVertexLayout(
		VertexComponent{Attr: AttrPosition, Format: VertexFloat3},
		VertexComponent{Attr: AttrColor0, Format: VertexUByte4N},
	)
	var b VertexLayout
	b.Add(AttrPosition, VertexFloat3).Add(AttrColor0, VertexUByte4N)
	assert.Equal(t, a.Hash(), b.Hash())

	b.EnableInstancing()
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.NotEqual(t, CombinedHash(a, b), CombinedHash(b, a))
}

func TestVertexLayoutAppendAndClear(t *testing.T) {
	var l VertexLayout
	l.Add(AttrPosition, VertexFloat3)
	var inst VertexLayout
	inst.Add(AttrInstance0, VertexFloat4)
	l.Append(inst)
	assert.Equal(t, 28, l.ByteSize())
	assert.Equal(t, 12, l.ComponentByteOffset(1))

	l.Clear()
	assert.True(t, l.Empty())
	assert.Zero(t, l.ByteSize())
	assert.Equal(t, StepPerVertex, l.StepFunction)
	assert.Equal(t, 1, l.Rate())
}

func TestVertexLayoutDuplicateAttrAsserts(t *testing.T) {
	var l VertexLayout
	l.Add(AttrPosition, VertexFloat3)
	assert.Panics(t, func() { l.Add(AttrPosition, VertexFloat2) })

	logger.SetAssertMode(logger.AssertIgnore)
	defer logger.SetAssertMode(logger.AssertPanic)
	l.Add(AttrPosition, VertexFloat2)
	assert.Equal(t, 1, l.NumComponents())
}

func TestVertexLayoutStrideLimit(t *testing.T) {
	logger.SetAssertMode(logger.AssertIgnore)
	defer logger.SetAssertMode(logger.AssertPanic)
	var l VertexLayout
	for a := AttrPosition; a < NumVertexAttrs; a++ {
		l.Add(a, VertexFloat4)
	}
	assert.Less(t, l.ByteSize(), MaxVertexStride)
	assert.Equal(t, 15, l.NumComponents())
}

func TestVertexFormatSizes(t *testing.T) {
	sizes := map[VertexFormat]int{
		VertexFloat: 4, VertexFloat2: 8, VertexFloat3: 12, VertexFloat4: 16,
		VertexByte4: 4, VertexByte4N: 4, VertexUByte4: 4, VertexUByte4N: 4,
		VertexShort2: 4, VertexShort2N: 4, VertexShort4: 8, VertexShort4N: 8,
		VertexUInt10_2N: 4,
	}
	for f, n := range sizes {
		assert.Equal(t, n, f.ByteSize(), f.String())
	}
	assert.Zero(t, InvalidVertexFormat.ByteSize())
}

func TestVertexAttrNames(t *testing.T) {
	assert.Equal(t, "texcoord0", AttrTexCoord0.String())
	assert.Equal(t, "instance3", AttrInstance3.String())
	for a := VertexAttr(0); a < NumVertexAttrs; a++ {
		assert.Equal(t, a, ParseVertexAttr(a.String()))
	}
}

func TestUniformBlockLayout(t *testing.T) {
	var a, b UniformBlockLayout
	a.Add("mvp", UniformMat4).Add("tint", UniformVec4)
	b.Add("mvp", UniformMat4).Add("tint", UniformVec4)
	assert.Equal(t, 80, a.ByteSize())
	assert.Equal(t, 64, a.ComponentByteOffset(1))
	assert.Equal(t, a.TypeHash, b.TypeHash)

	var c UniformBlockLayout
	c.Add("mvp", UniformMat4).Add("tint", UniformVec3)
	assert.NotEqual(t, a.TypeHash, c.TypeHash)
}
