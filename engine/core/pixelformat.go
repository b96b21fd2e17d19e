package core

// PixelFormat enumerates texture and render target formats.
type PixelFormat uint8

const (
	PixelFormatRGBA8 PixelFormat = iota
	PixelFormatRGB8
	PixelFormatRGBA4
	PixelFormatR5G6B5
	PixelFormatR5G5B5A1
	PixelFormatR10G10B10A2
	PixelFormatRGBA32F
	PixelFormatRGBA16F
	PixelFormatR32F
	PixelFormatR16F
	PixelFormatL8
	PixelFormatDXT1
	PixelFormatDXT3
	PixelFormatDXT5
	PixelFormatDEPTH
	PixelFormatDEPTHSTENCIL
	PixelFormatPVRTC2_RGB
	PixelFormatPVRTC4_RGB
	PixelFormatPVRTC2_RGBA
	PixelFormatPVRTC4_RGBA
	PixelFormatETC2_RGB8
	PixelFormatETC2_SRGB8
	NumPixelFormats

	InvalidPixelFormat PixelFormat = 0xFF
	// PixelFormatNone means "no attachment".
	PixelFormatNone = InvalidPixelFormat
)

var pixelFormatNames = [NumPixelFormats]string{
	"RGBA8", "RGB8", "RGBA4", "R5G6B5", "R5G5B5A1", "R10G10B10A2",
	"RGBA32F", "RGBA16F", "R32F", "R16F", "L8",
	"DXT1", "DXT3", "DXT5", "DEPTH", "DEPTHSTENCIL",
	"PVRTC2_RGB", "PVRTC4_RGB", "PVRTC2_RGBA", "PVRTC4_RGBA",
	"ETC2_RGB8", "ETC2_SRGB8",
}

func (f PixelFormat) String() string {
	if f < NumPixelFormats {
		return pixelFormatNames[f]
	}
	return "None"
}

// ParsePixelFormat is the inverse of String. Unknown names map to
// InvalidPixelFormat.
func ParsePixelFormat(s string) PixelFormat {
	for i, n := range pixelFormatNames {
		if n == s {
			return PixelFormat(i)
		}
	}
	return InvalidPixelFormat
}

func (f PixelFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *PixelFormat) UnmarshalText(b []byte) error {
	*f = ParsePixelFormat(string(b))
	return nil
}

func (f PixelFormat) IsValidRenderTargetColorFormat() bool {
	switch f {
	case PixelFormatRGBA8, PixelFormatR10G10B10A2, PixelFormatRGBA32F, PixelFormatRGBA16F:
		return true
	}
	return false
}

func (f PixelFormat) IsValidRenderTargetDepthFormat() bool {
	return f == PixelFormatDEPTH || f == PixelFormatDEPTHSTENCIL
}

func (f PixelFormat) IsValidTextureColorFormat() bool {
	return f < NumPixelFormats && !f.IsValidTextureDepthFormat()
}

func (f PixelFormat) IsValidTextureDepthFormat() bool {
	return f == PixelFormatDEPTH || f == PixelFormatDEPTHSTENCIL
}

// IsDepth reports a pure depth format (not depth-stencil).
func (f PixelFormat) IsDepth() bool        { return f == PixelFormatDEPTH }
func (f PixelFormat) IsDepthStencil() bool { return f == PixelFormatDEPTHSTENCIL }

func (f PixelFormat) IsCompressed() bool {
	return f.IsDXT() || f.IsPVRTC() || f.IsETC2()
}

func (f PixelFormat) IsDXT() bool {
	return f == PixelFormatDXT1 || f == PixelFormatDXT3 || f == PixelFormatDXT5
}

func (f PixelFormat) IsPVRTC() bool {
	switch f {
	case PixelFormatPVRTC2_RGB, PixelFormatPVRTC4_RGB, PixelFormatPVRTC2_RGBA, PixelFormatPVRTC4_RGBA:
		return true
	}
	return false
}

func (f PixelFormat) IsETC2() bool {
	return f == PixelFormatETC2_RGB8 || f == PixelFormatETC2_SRGB8
}

// ByteSize returns bytes per pixel, 0 for compressed and invalid formats.
func (f PixelFormat) ByteSize() int {
	switch f {
	case PixelFormatRGBA32F:
		return 16
	case PixelFormatRGBA16F:
		return 8
	case PixelFormatRGBA8, PixelFormatR10G10B10A2, PixelFormatR32F, PixelFormatDEPTHSTENCIL:
		return 4
	case PixelFormatRGB8:
		return 3
	case PixelFormatR5G6B5, PixelFormatR5G5B5A1, PixelFormatRGBA4, PixelFormatR16F, PixelFormatDEPTH:
		return 2
	case PixelFormatL8:
		return 1
	}
	return 0
}

// NumBits returns the bit width of one channel, 0 for combinations that do
// not exist. Only single channel bits are meaningful.
func (f PixelFormat) NumBits(ch PixelChannel) int {
	rgb := ch == ChannelRed || ch == ChannelGreen || ch == ChannelBlue
	rgba := rgb || ch == ChannelAlpha
	switch f {
	case PixelFormatRGBA32F:
		if rgba {
			return 32
		}
	case PixelFormatRGBA16F:
		if rgba {
			return 16
		}
	case PixelFormatR32F:
		if ch == ChannelRed {
			return 32
		}
	case PixelFormatR16F:
		if ch == ChannelRed {
			return 16
		}
	case PixelFormatR10G10B10A2:
		if rgb {
			return 10
		} else if ch == ChannelAlpha {
			return 2
		}
	case PixelFormatRGBA8:
		if rgba {
			return 8
		}
	case PixelFormatRGB8:
		if rgb {
			return 8
		}
	case PixelFormatR5G6B5:
		if ch == ChannelRed || ch == ChannelBlue {
			return 5
		} else if ch == ChannelGreen {
			return 6
		}
	case PixelFormatR5G5B5A1:
		if rgb {
			return 5
		} else if ch == ChannelAlpha {
			return 1
		}
	case PixelFormatRGBA4:
		if rgba {
			return 4
		}
	case PixelFormatL8:
		if ch == ChannelRed {
			return 8
		}
	case PixelFormatDEPTH:
		if ch == ChannelDepth {
			return 16
		}
	case PixelFormatDEPTHSTENCIL:
		if ch == ChannelDepth {
			return 24
		} else if ch == ChannelStencil {
			return 8
		}
	}
	return 0
}

// RowPitch returns the distance in bytes between two rows of pixels (or of
// 4x4 blocks for compressed formats).
func RowPitch(f PixelFormat, width int) int {
	switch f {
	case PixelFormatDXT1, PixelFormatETC2_RGB8, PixelFormatETC2_SRGB8:
		return max(((width+3)/4)*8, 8)
	case PixelFormatDXT3, PixelFormatDXT5:
		return max(((width+3)/4)*16, 16)
	case PixelFormatPVRTC4_RGB, PixelFormatPVRTC4_RGBA:
		const blockSize, bpp = 4 * 4, 4
		return max(width/4, 2) * (blockSize * bpp / 8)
	case PixelFormatPVRTC2_RGB, PixelFormatPVRTC2_RGBA:
		const blockSize, bpp = 8 * 4, 2
		return max(width/4, 2) * (blockSize * bpp / 8)
	}
	return width * f.ByteSize()
}

// ImagePitch returns the byte size of one 2D image (one mip of one face or
// slice).
func ImagePitch(f PixelFormat, width, height int) int {
	rows := height
	if f.IsCompressed() {
		rows = (height + 3) / 4
	}
	return max(rows, 1) * RowPitch(f, width)
}
