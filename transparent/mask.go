package transparent

import "image"

// Mask marks the background pixels of an image, row-major over Rect.
type Mask struct {
	Rect image.Rectangle
	Bits []bool
}

// At reports whether (x, y) is background. Points outside Rect are not.
func (m *Mask) At(x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(m.Rect)) {
		return false
	}
	return m.Bits[(y-m.Rect.Min.Y)*m.Rect.Dx()+(x-m.Rect.Min.X)]
}

// Count returns the number of background pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Classify builds the background mask of img: a pixel is background when its
// red, green and blue samples are all strictly greater than threshold.
// Alpha is not consulted.
func Classify(img *image.NRGBA, threshold uint8) *Mask {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &Mask{Rect: b, Bits: make([]bool, w*h)}

	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			p := img.Pix[row+x*4 : row+x*4+3 : row+x*4+3]
			m.Bits[y*w+x] = p[0] > threshold && p[1] > threshold && p[2] > threshold
		}
	}
	return m
}

// Apply overwrites every masked pixel of img with transparent white
// (255, 255, 255, 0) and returns how many pixels it cleared. The mask must
// have been built from img.
func Apply(img *image.NRGBA, m *Mask) int {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	cleared := 0

	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			if !m.Bits[y*w+x] {
				continue
			}
			p := img.Pix[row+x*4 : row+x*4+4 : row+x*4+4]
			p[0], p[1], p[2], p[3] = 255, 255, 255, 0
			cleared++
		}
	}
	return cleared
}
