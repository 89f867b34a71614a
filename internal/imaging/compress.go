// Package imaging shrinks uploaded photos before they are stored.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxWidth is the widest output produced when Options.MaxWidth is unset.
	DefaultMaxWidth = 1920
	// DefaultQuality is the JPEG quality factor used when Options.Quality is zero or out of range.
	DefaultQuality = 0.7
	// ContentType is the MIME type of every compressed output.
	ContentType = "image/jpeg"
	// Extension is the file extension callers should give compressed output.
	Extension = ".jpg"

	// MaxInputBytes bounds how much of the source is read.
	MaxInputBytes = 32 << 20
	// MaxSourcePixels bounds the decoded raster size.
	MaxSourcePixels = 80_000_000
)

var (
	// ErrDecode is returned when the source is not a readable image.
	ErrDecode = errors.New("failed to decode image")
	// ErrEmptyImage is returned for images with zero width or height.
	ErrEmptyImage = errors.New("image has no pixels")
	// ErrSurface is returned when a raster surface for the image cannot be allocated.
	ErrSurface = errors.New("failed to allocate image surface")
	// ErrEncode is returned when re-encoding produces no output.
	ErrEncode = errors.New("compression failed")
	// ErrTooLarge is returned when the source exceeds MaxInputBytes.
	ErrTooLarge = errors.New("image file too large")
)

// Options controls the output size and quality. The zero value means the defaults.
type Options struct {
	// MaxWidth of zero or less means DefaultMaxWidth.
	MaxWidth int
	// Quality is a factor in (0, 1]. Zero means DefaultQuality; the lowest JPEG quality
	// is reached by any value up to 0.01.
	Quality float64
}

// Result is a re-encoded image ready for upload.
type Result struct {
	Data         []byte
	Width        int
	Height       int
	ContentType  string
	SourceFormat string
}

func (o Options) normalized() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if math.IsNaN(o.Quality) || o.Quality <= 0 || o.Quality > 1 {
		o.Quality = DefaultQuality
	}
	return o
}

func (o Options) jpegQuality() int {
	q := int(math.Round(o.Quality * 100))
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

// Compress decodes src, scales it down to at most opts.MaxWidth pixels wide (never up),
// and re-encodes it as JPEG.
func Compress(ctx context.Context, src io.Reader, opts Options) (*Result, error) {
	opts = opts.normalized()

	raw, err := io.ReadAll(io.LimitReader(src, MaxInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(raw) > MaxInputBytes {
		return nil, ErrTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	width, height, err := TargetSize(cfg.Width, cfg.Height, opts.MaxWidth)
	if err != nil {
		return nil, err
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurface, cfg.Width, cfg.Height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	surface := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(surface, surface.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if width == img.Bounds().Dx() && height == img.Bounds().Dy() {
		draw.Draw(surface, surface.Bounds(), img, img.Bounds().Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(surface, surface.Bounds(), img, img.Bounds(), draw.Over, nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, surface, &jpeg.Options{Quality: opts.jpegQuality()}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if out.Len() == 0 {
		return nil, ErrEncode
	}

	return &Result{
		Data:         out.Bytes(),
		Width:        width,
		Height:       height,
		ContentType:  ContentType,
		SourceFormat: format,
	}, nil
}

// TargetSize returns the output dimensions for a width x height source.
// Width is capped at maxWidth and height follows the same ratio.
func TargetSize(width, height, maxWidth int) (int, int, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if width <= maxWidth {
		return width, height, nil
	}
	scaled := int(math.Round(float64(height) * float64(maxWidth) / float64(width)))
	if scaled < 1 {
		scaled = 1
	}
	return maxWidth, scaled, nil
}
