// Package imageproc resizes, watermarks and re-encodes product images.
package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"catalog-import/internal/logger"
)

const (
	// OutputContentType is the content type of every transformed image.
	OutputContentType = "image/jpeg"
	// OutputExtension is the file extension of every transformed image.
	OutputExtension = ".jpg"

	defaultOpacity      = 0.35
	watermarkWidthRatio = 0.25
	watermarkMargin     = 16
)

// ImageDecodeError reports input bytes that are not a decodable image.
type ImageDecodeError struct {
	Err error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *ImageDecodeError) Unwrap() error {
	return e.Err
}

// Transformer converts archive images into catalog images.
type Transformer struct {
	opacity float64
}

// NewTransformer creates a Transformer. Opacity outside (0,1] uses the default.
func NewTransformer(watermarkOpacity float64) *Transformer {
	if watermarkOpacity <= 0 || watermarkOpacity > 1 {
		watermarkOpacity = defaultOpacity
	}
	return &Transformer{opacity: watermarkOpacity}
}

// Transform decodes data, shrinks it to maxWidth keeping the aspect ratio,
// composites the optional watermark in the bottom-right corner and encodes JPEG
// at the given quality. Images are never upscaled. A watermark that cannot be
// applied is logged and skipped.
func (t *Transformer) Transform(data []byte, maxWidth, quality int, watermark []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &ImageDecodeError{Err: err}
	}

	if maxWidth > 0 && src.Bounds().Dx() > maxWidth {
		src = imaging.Resize(src, maxWidth, 0, imaging.Lanczos)
	}

	// JPEG has no alpha channel; flatten onto white.
	bounds := src.Bounds()
	out := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	out = imaging.Overlay(out, src, image.Pt(0, 0), 1.0)

	if len(watermark) > 0 {
		if marked, err := t.composite(out, watermark); err != nil {
			logger.Warn("Skipping watermark",
				slog.String("error", err.Error()))
		} else {
			out = marked
		}
	}

	if quality < 1 || quality > 100 {
		quality = 80
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func (t *Transformer) composite(base *image.NRGBA, watermark []byte) (result *image.NRGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("composite watermark: %v", r)
		}
	}()

	mark, err := imaging.Decode(bytes.NewReader(watermark))
	if err != nil {
		return nil, fmt.Errorf("decode watermark: %w", err)
	}

	bw, bh := base.Bounds().Dx(), base.Bounds().Dy()
	maxMarkWidth := int(float64(bw) * watermarkWidthRatio)
	if maxMarkWidth < 1 {
		return nil, fmt.Errorf("image too small for watermark")
	}
	if mark.Bounds().Dx() > maxMarkWidth {
		mark = imaging.Resize(mark, maxMarkWidth, 0, imaging.Lanczos)
	}

	mw, mh := mark.Bounds().Dx(), mark.Bounds().Dy()
	x := bw - mw - watermarkMargin
	y := bh - mh - watermarkMargin
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return imaging.Overlay(base, mark, image.Pt(x, y), t.opacity), nil
}
