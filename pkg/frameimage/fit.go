// Package frameimage fits stored pictures to the frame panel.
package frameimage

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	domainImage "github.com/photoframe/photoframe/domains/image"
	_ "golang.org/x/image/webp"
)

const DefaultQuality = 85

// Fitter shrinks images that exceed the panel and re-encodes them as JPEG.
// A zero bound leaves that dimension unconstrained. JPEGs already inside the
// box pass through untouched.
type Fitter struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// NewFitter returns nil when no bound is set so the caller can skip fitting.
func NewFitter(maxWidth, maxHeight, quality int) *Fitter {
	if maxWidth <= 0 && maxHeight <= 0 {
		return nil
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Fitter{MaxWidth: maxWidth, MaxHeight: maxHeight, Quality: quality}
}

func (f *Fitter) Transform(img domainImage.Image) (domainImage.Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return domainImage.Image{}, fmt.Errorf("unsupported image %s: %w", img.Key, err)
	}

	boxW, boxH := f.box(cfg.Width, cfg.Height)
	if format == "jpeg" && cfg.Width <= boxW && cfg.Height <= boxH {
		return img, nil
	}

	src, err := imaging.Decode(bytes.NewReader(img.Data), imaging.AutoOrientation(true))
	if err != nil {
		return domainImage.Image{}, fmt.Errorf("failed to decode %s: %w", img.Key, err)
	}
	fitted := imaging.Fit(src, boxW, boxH, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(f.Quality)); err != nil {
		return domainImage.Image{}, fmt.Errorf("failed to encode %s: %w", img.Key, err)
	}

	return domainImage.Image{
		Key:           img.Key,
		Data:          buf.Bytes(),
		ContentLength: int64(buf.Len()),
		ContentType:   domainImage.ContentTypeJPEG,
	}, nil
}

func (f *Fitter) box(width, height int) (int, int) {
	w, h := f.MaxWidth, f.MaxHeight
	if w <= 0 {
		w = width
	}
	if h <= 0 {
		h = height
	}
	return w, h
}
