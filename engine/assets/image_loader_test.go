package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/prism/engine/core"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadPNGPacksRGBA(t *testing.T) {
	// A paletted source exercises the conversion path.
	src := image.NewPaletted(image.Rect(0, 0, 3, 2), color.Palette{color.Black, color.RGBA{255, 0, 0, 255}})
	src.SetColorIndex(2, 1, 1)
	fsys := fstest.MapFS{"tex/red.png": {Data: encodePNG(t, src)}}

	desc, pix, err := LoadPNG(fsys, "tex/red.png")
	require.NoError(t, err)
	assert.Equal(t, "tex/red.png", desc.Locator)
	assert.Equal(t, 3, desc.Width)
	assert.Equal(t, 2, desc.Height)
	assert.Equal(t, core.PixelFormatRGBA8, desc.ColorFormat)
	assert.Equal(t, core.UsageImmutable, desc.Usage)
	require.Len(t, pix, 3*2*4)
	assert.Equal(t, len(pix), desc.ImageData.Sizes[0][0])
	assert.Equal(t, []byte{0, 0, 0, 255}, pix[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, pix[(1*3+2)*4:(1*3+3)*4])
}

func TestLoadPNGFitScalesDown(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 16))
	fsys := fstest.MapFS{"wide.png": {Data: encodePNG(t, src)}}

	desc, pix, err := LoadPNGFit(fsys, "wide.png", 32)
	require.NoError(t, err)
	assert.Equal(t, 32, desc.Width)
	assert.Equal(t, 8, desc.Height)
	assert.Len(t, pix, 32*8*4)

	desc, _, err = LoadPNGFit(fsys, "wide.png", 128)
	require.NoError(t, err)
	assert.Equal(t, 64, desc.Width)
}

func TestLoadPNGErrors(t *testing.T) {
	fsys := fstest.MapFS{"junk.png": {Data: []byte("not a png")}}
	_, _, err := LoadPNG(fsys, "missing.png")
	assert.Error(t, err)
	_, _, err = LoadPNG(fsys, "junk.png")
	assert.Error(t, err)
}
