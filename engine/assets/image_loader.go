// Package assets turns files on disk into gfx resource descriptions.
package assets

import (
	"fmt"
	"image"
	"image/png"
	"io/fs"

	"golang.org/x/image/draw"

	"github.com/hubastard/prism/engine/core"
)

// LoadPNG decodes a PNG into tightly packed RGBA8 pixels (row-major,
// top-left origin) and a matching immutable texture description. The file
// name becomes the locator.
func LoadPNG(fsys fs.FS, name string) (core.TextureDesc, []byte, error) {
	return LoadPNGFit(fsys, name, 0)
}

// LoadPNGFit is LoadPNG with the image scaled down so neither side exceeds
// maxSize. A maxSize of zero keeps the original size.
func LoadPNGFit(fsys fs.FS, name string, maxSize int) (core.TextureDesc, []byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return core.TextureDesc{}, nil, fmt.Errorf("open %q: %w", name, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return core.TextureDesc{}, nil, fmt.Errorf("decode png %q: %w", name, err)
	}
	rgba := toRGBA(img, fitSize(img.Bounds().Size(), maxSize))
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()

	desc := core.NewTextureFromPixelData2D(w, h, 1, core.PixelFormatRGBA8)
	desc.Locator = name
	return desc, rgba.Pix, nil
}

func fitSize(sz image.Point, maxSize int) image.Point {
	if maxSize <= 0 || (sz.X <= maxSize && sz.Y <= maxSize) {
		return sz
	}
	if sz.X >= sz.Y {
		return image.Pt(maxSize, max(1, sz.Y*maxSize/sz.X))
	}
	return image.Pt(max(1, sz.X*maxSize/sz.Y), maxSize)
}

// toRGBA converts img into a fresh *image.RGBA of the given size whose
// stride is exactly 4*width.
func toRGBA(img image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	if size == img.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	}
	return dst
}
