package transparent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/chaos-io/bgclear/util"
)

const (
	// OutputPrefix is prepended to every output file name.
	OutputPrefix = "transparent_"
	// OutputExt is the extension of the single supported output codec.
	OutputExt = ".png"
)

// Stem returns the file name of path without its last extension. A name whose
// only dot is the leading one (".hidden") is returned whole.
func Stem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// OutputName maps a source path to its output file name. The source
// extension does not take part: a.jpg and a.png both become transparent_a.png.
func OutputName(src string) string {
	return OutputPrefix + Stem(src) + OutputExt
}

// Transformer runs one unit of work: decode, remove the background, save.
type Transformer struct {
	OutputDir string
	RemBG     BackgroundRemover
	// MaxSize caps the longest edge before removal; 0 keeps the source size.
	MaxSize int
	Logger  *slog.Logger
}

func NewTransformer(outputDir string, rembg BackgroundRemover) *Transformer {
	return &Transformer{
		OutputDir: outputDir,
		RemBG:     rembg,
		Logger:    slog.Default(),
	}
}

// OutputPath returns where the result for src is written.
func (t *Transformer) OutputPath(src string) string {
	return filepath.Join(t.OutputDir, OutputName(src))
}

// Transform processes src and returns the written path. Open and write
// failures are *IOError, unparseable input is *DecodeError. The output
// directory must already exist.
func (t *Transformer) Transform(ctx context.Context, src string) (string, error) {
	start := time.Now()
	dst := t.OutputPath(src)

	img, err := util.OpenImage(src)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "", &IOError{Op: "open", Path: src, Err: err}
		}
		return "", &DecodeError{Path: src, Err: err}
	}

	buf := resizeWithinMax(toNRGBA(img), t.MaxSize)
	if t.logger().Enabled(ctx, slog.LevelDebug) {
		t.logger().Debug("decoded image",
			"path", src,
			"size", buf.Bounds().Size(),
		)
	}

	out, err := t.RemBG.Remove(ctx, buf)
	if err != nil {
		return "", fmt.Errorf("remove background %s: %w", src, err)
	}

	if err := util.SavePNG(dst, out); err != nil {
		return "", &IOError{Op: "write", Path: dst, Err: err}
	}

	t.logger().Debug("image saved", "path", src, "output", dst, "elapsed", time.Since(start))
	return dst, nil
}

func (t *Transformer) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}
