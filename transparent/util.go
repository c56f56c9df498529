package transparent

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// resizeWithinMax 缩放（最长边 <= maxSize），maxSize <= 0 表示不缩放
func resizeWithinMax(img *image.NRGBA, maxSize int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	longest := max(w, h)

	if maxSize <= 0 || longest <= maxSize {
		return img
	}

	scale := float64(maxSize) / float64(longest)
	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))

	resized := resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)
	return toNRGBA(resized)
}

// toNRGBA returns img as non-premultiplied RGBA. Sources without an alpha
// channel come out fully opaque. Paletted and 16-bit non-premultiplied
// sources are copied straight so translucent pixels keep their RGB.
func toNRGBA(img image.Image) *image.NRGBA {
	switch src := img.(type) {
	case *image.NRGBA:
		return src
	case *image.Paletted:
		return palettedToNRGBA(src)
	case *image.NRGBA64:
		return nrgba64ToNRGBA(src)
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

func palettedToNRGBA(src *image.Paletted) *image.NRGBA {
	// indexes past the end of the palette stay transparent black
	var lut [256]color.NRGBA
	for i, c := range src.Palette {
		if i >= len(lut) {
			break
		}
		lut[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}

	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			c := lut[src.Pix[si]]
			dst.Pix[di+0] = c.R
			dst.Pix[di+1] = c.G
			dst.Pix[di+2] = c.B
			dst.Pix[di+3] = c.A
			si++
			di += 4
		}
	}
	return dst
}

func nrgba64ToNRGBA(src *image.NRGBA64) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			// big-endian 16-bit channels, keep the high byte
			dst.Pix[di+0] = src.Pix[si+0]
			dst.Pix[di+1] = src.Pix[si+2]
			dst.Pix[di+2] = src.Pix[si+4]
			dst.Pix[di+3] = src.Pix[si+6]
			si += 8
			di += 4
		}
	}
	return dst
}
