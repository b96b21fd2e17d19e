package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelFormatByteSizeAndBits(t *testing.T) {
	rgba := []PixelChannel{ChannelRed, ChannelGreen, ChannelBlue, ChannelAlpha}

	assert.Equal(t, 4, PixelFormatRGBA8.ByteSize())
	for _, ch := range rgba {
		assert.Equal(t, 8, PixelFormatRGBA8.NumBits(ch))
	}
	assert.Zero(t, PixelFormatRGBA8.NumBits(ChannelDepth))
	assert.Zero(t, PixelFormatRGBA8.NumBits(ChannelStencil))

	assert.Equal(t, 4, PixelFormatDEPTHSTENCIL.ByteSize())
	assert.Equal(t, 24, PixelFormatDEPTHSTENCIL.NumBits(ChannelDepth))
	assert.Equal(t, 8, PixelFormatDEPTHSTENCIL.NumBits(ChannelStencil))
	for _, ch := range rgba {
		assert.Zero(t, PixelFormatDEPTHSTENCIL.NumBits(ch))
	}

	assert.Equal(t, 2, PixelFormatDEPTH.ByteSize())
	assert.Equal(t, 16, PixelFormatDEPTH.NumBits(ChannelDepth))

	assert.Equal(t, 5, PixelFormatR5G6B5.NumBits(ChannelRed))
	assert.Equal(t, 6, PixelFormatR5G6B5.NumBits(ChannelGreen))
	assert.Zero(t, PixelFormatR5G6B5.NumBits(ChannelAlpha))
	assert.Equal(t, 2, PixelFormatR10G10B10A2.NumBits(ChannelAlpha))
	assert.Equal(t, 32, PixelFormatR32F.NumBits(ChannelRed))
	assert.Zero(t, PixelFormatR32F.NumBits(ChannelGreen))
}

func TestByteSizeMatchesBitsForUncompressedColorFormats(t *testing.T) {
	for f := PixelFormat(0); f < NumPixelFormats; f++ {
		if f.IsCompressed() || f == PixelFormatDEPTH {
			continue
		}
		bits := 0
		for _, ch := range []PixelChannel{ChannelRed, ChannelGreen, ChannelBlue, ChannelAlpha, ChannelDepth, ChannelStencil} {
			bits += f.NumBits(ch)
		}
		// L8 and the float formats carry the full pixel in red
		assert.Equal(t, f.ByteSize()*8, bits, f.String())
	}
}

func TestCompressedFormats(t *testing.T) {
	for _, f := range []PixelFormat{PixelFormatDXT1, PixelFormatDXT5, PixelFormatPVRTC2_RGB, PixelFormatETC2_SRGB8} {
		assert.True(t, f.IsCompressed(), f.String())
		assert.Zero(t, f.ByteSize(), f.String())
		assert.Zero(t, f.NumBits(ChannelRed), f.String())
	}
	assert.False(t, PixelFormatRGBA8.IsCompressed())
	assert.Zero(t, InvalidPixelFormat.ByteSize())
}

func TestRowPitch(t *testing.T) {
	assert.Equal(t, 24, RowPitch(PixelFormatDXT1, 10))
	assert.Equal(t, 8, RowPitch(PixelFormatDXT1, 1))
	assert.Equal(t, 16, RowPitch(PixelFormatDXT5, 2))
	assert.Equal(t, 48, RowPitch(PixelFormatDXT3, 10))
	assert.Equal(t, 16, RowPitch(PixelFormatPVRTC4_RGB, 4))
	assert.Equal(t, 32, RowPitch(PixelFormatPVRTC4_RGBA, 16))
	assert.Equal(t, 16, RowPitch(PixelFormatPVRTC2_RGB, 1))
	assert.Equal(t, 40, RowPitch(PixelFormatRGBA8, 10))
	assert.Equal(t, 30, RowPitch(PixelFormatRGB8, 10))
}

func TestImagePitch(t *testing.T) {
	assert.Equal(t, 24*3, ImagePitch(PixelFormatDXT1, 10, 10))
	assert.Equal(t, 8, ImagePitch(PixelFormatDXT1, 1, 1))
	assert.Equal(t, 4*4*4, ImagePitch(PixelFormatRGBA8, 4, 4))
	assert.Equal(t, 4, ImagePitch(PixelFormatRGBA8, 1, 0))
}

func TestRenderTargetFormats(t *testing.T) {
	assert.True(t, PixelFormatRGBA8.IsValidRenderTargetColorFormat())
	assert.True(t, PixelFormatRGBA16F.IsValidRenderTargetColorFormat())
	assert.False(t, PixelFormatRGB8.IsValidRenderTargetColorFormat())
	assert.False(t, PixelFormatDEPTH.IsValidRenderTargetColorFormat())
	assert.True(t, PixelFormatDEPTH.IsValidRenderTargetDepthFormat())
	assert.True(t, PixelFormatDEPTHSTENCIL.IsValidTextureDepthFormat())
	assert.False(t, PixelFormatDEPTHSTENCIL.IsValidTextureColorFormat())
	assert.True(t, PixelFormatDEPTH.IsDepth())
	assert.False(t, PixelFormatDEPTHSTENCIL.IsDepth())
}

func TestPixelFormatNames(t *testing.T) {
	for f := PixelFormat(0); f < NumPixelFormats; f++ {
		assert.Equal(t, f, ParsePixelFormat(f.String()))
	}
	assert.Equal(t, InvalidPixelFormat, ParsePixelFormat("BGRA8"))
}
