package transparent

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestClassify_Threshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		px        color.NRGBA
		threshold uint8
		want      bool
	}{
		{"exactly at threshold is kept", color.NRGBA{200, 200, 200, 255}, 200, false},
		{"one above on every channel is cleared", color.NRGBA{201, 201, 201, 255}, 200, true},
		{"pure white", color.NRGBA{255, 255, 255, 255}, 200, true},
		{"red channel at threshold", color.NRGBA{200, 255, 255, 255}, 200, false},
		{"green channel at threshold", color.NRGBA{255, 200, 255, 255}, 200, false},
		{"blue channel at threshold", color.NRGBA{255, 255, 200, 255}, 200, false},
		{"alpha is ignored", color.NRGBA{250, 250, 250, 0}, 200, true},
		{"black", color.NRGBA{0, 0, 0, 255}, 200, false},
		{"threshold 255 never matches", color.NRGBA{255, 255, 255, 255}, 255, false},
		{"threshold 0 matches any non-zero", color.NRGBA{1, 1, 1, 255}, 0, true},
		{"threshold 0 keeps a zero channel", color.NRGBA{0, 9, 9, 255}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Classify(newFilled(2, 2, tt.px), tt.threshold)
			assert.Equal(t, tt.want, m.At(1, 1))
			if tt.want {
				assert.Equal(t, 4, m.Count())
			} else {
				assert.Zero(t, m.Count())
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{230, 240, 250, 128})
	img.SetNRGBA(1, 0, color.NRGBA{10, 20, 30, 77})
	img.SetNRGBA(2, 0, color.NRGBA{255, 255, 200, 255})

	cleared := Apply(img, Classify(img, 200))

	assert.Equal(t, 1, cleared)
	assert.Equal(t, color.NRGBA{255, 255, 255, 0}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{10, 20, 30, 77}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{255, 255, 200, 255}, img.NRGBAAt(2, 0))
}

func TestApply_OffsetBoundsAndSubImage(t *testing.T) {
	t.Parallel()

	parent := newFilled(6, 6, color.NRGBA{0, 0, 0, 255})
	sub := parent.SubImage(image.Rect(2, 2, 5, 4)).(*image.NRGBA)
	sub.SetNRGBA(3, 3, color.NRGBA{255, 255, 255, 255})

	m := Classify(sub, 200)
	require.Equal(t, sub.Bounds(), m.Rect)
	assert.True(t, m.At(3, 3))
	assert.False(t, m.At(2, 2))
	assert.False(t, m.At(0, 0), "outside the rectangle")

	assert.Equal(t, 1, Apply(sub, m))
	assert.Equal(t, color.NRGBA{255, 255, 255, 0}, parent.NRGBAAt(3, 3))
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, parent.NRGBAAt(5, 3), "pixel past the sub-image row untouched")
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 37)
	}

	Apply(img, Classify(img, 180))
	once := append([]uint8(nil), img.Pix...)
	Apply(img, Classify(img, 180))

	assert.Equal(t, once, img.Pix)
}
