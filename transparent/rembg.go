package transparent

import (
	"context"
	"fmt"
	"image"
)

// DefaultThreshold is the background threshold used when none is configured.
const DefaultThreshold = 200

// BackgroundRemover turns the background of an image transparent.
type BackgroundRemover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}

// WhiteRemBG removes near-white backgrounds with a single RGB threshold.
// It is safe for concurrent use.
type WhiteRemBG struct {
	threshold uint8
}

// NewWhiteRemBG validates threshold and returns a remover for it.
func NewWhiteRemBG(threshold int) (*WhiteRemBG, error) {
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	return &WhiteRemBG{threshold: uint8(threshold)}, nil
}

// Threshold returns the configured threshold.
func (w *WhiteRemBG) Threshold() int { return int(w.threshold) }

// Remove converts img to NRGBA and clears its background pixels.
// An *image.NRGBA input is modified in place and returned.
func (w *WhiteRemBG) Remove(_ context.Context, img image.Image) (image.Image, error) {
	dst := toNRGBA(img)
	Apply(dst, Classify(dst, w.threshold))
	return dst, nil
}
