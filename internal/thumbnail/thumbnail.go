// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package thumbnail scales raster attachments down for previews and
// normalizes oversized uploads.
//
// Decoding supports JPEG, PNG, GIF and WebP. Other formats, PDF included,
// are reported with [ErrUnsupported] and callers serve the original bytes.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

const (
	// PreviewMimeType is the content type of every generated preview.
	PreviewMimeType = "image/jpeg"

	// ShrunkMimeType is the content type of an upload that was scaled down.
	ShrunkMimeType = "image/png"

	// DefaultMaxUploadSide bounds both sides of a stored image.
	DefaultMaxUploadSide = 2048

	previewQuality = 85
)

var (
	// ErrUnsupported is returned for content that cannot be decoded as an image.
	ErrUnsupported = errors.New("unsupported image format")

	// ErrInvalidSize is returned for a non-positive target size.
	ErrInvalidSize = errors.New("invalid target size")
)

// Thumbnailer produces scaled copies of attachments.
type Thumbnailer interface {
	// Preview returns a JPEG at most maxWidth pixels wide. Images that are
	// already narrower keep their size.
	Preview(content models.AttachmentContent, maxWidth int) (models.AttachmentContent, error)

	// Shrink scales images whose sides exceed maxSide down to fit and
	// re-encodes them as PNG. Smaller images and non-images are returned
	// unchanged.
	Shrink(content models.AttachmentContent, maxSide int) models.AttachmentContent
}

// Scaler is the x/image implementation of [Thumbnailer].
type Scaler struct {
	interpolator draw.Interpolator
}

// NewScaler returns a [Scaler] using Catmull-Rom resampling.
func NewScaler() *Scaler {
	return &Scaler{interpolator: draw.CatmullRom}
}

func (s *Scaler) Preview(content models.AttachmentContent, maxWidth int) (models.AttachmentContent, error) {
	if maxWidth <= 0 {
		return models.AttachmentContent{}, ErrInvalidSize
	}
	if !IsPreviewable(content.MimeType) {
		return models.AttachmentContent{}, ErrUnsupported
	}

	src, err := decode(content.Data)
	if err != nil {
		return models.AttachmentContent{}, err
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxWidth {
		height = max(1, height*maxWidth/width)
		width = maxWidth
	}

	var out bytes.Buffer
	if err = jpeg.Encode(&out, s.scale(src, width, height), &jpeg.Options{Quality: previewQuality}); err != nil {
		return models.AttachmentContent{}, fmt.Errorf("encoding preview: %w", err)
	}

	return models.AttachmentContent{MimeType: PreviewMimeType, Data: out.Bytes()}, nil
}

func (s *Scaler) Shrink(content models.AttachmentContent, maxSide int) models.AttachmentContent {
	if maxSide <= 0 {
		return content
	}

	src, err := decode(content.Data)
	if err != nil {
		return content
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxSide && height <= maxSide {
		return content
	}

	if width >= height {
		height = max(1, height*maxSide/width)
		width = maxSide
	} else {
		width = max(1, width*maxSide/height)
		height = maxSide
	}

	var out bytes.Buffer
	if err = png.Encode(&out, s.scale(src, width, height)); err != nil {
		return content
	}

	return models.AttachmentContent{MimeType: ShrunkMimeType, Data: out.Bytes()}
}

func (s *Scaler) scale(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.interpolator.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// IsPreviewable reports whether previews are attempted for mimeType.
func IsPreviewable(mimeType string) bool {
	mimeType = strings.ToLower(mimeType)
	return strings.HasPrefix(mimeType, "image/") || strings.HasPrefix(mimeType, "application/pdf")
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return img, nil
}
