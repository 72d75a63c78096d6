// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

func pngOf(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height, format
}

func TestScaler_Preview(t *testing.T) {
	s := NewScaler()

	tests := []struct {
		name       string
		width      int
		height     int
		maxWidth   int
		wantWidth  int
		wantHeight int
	}{
		{name: "scales wide image", width: 400, height: 200, maxWidth: 100, wantWidth: 100, wantHeight: 50},
		{name: "keeps narrow image", width: 80, height: 60, maxWidth: 100, wantWidth: 80, wantHeight: 60},
		{name: "never collapses height", width: 1000, height: 1, maxWidth: 10, wantWidth: 10, wantHeight: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Preview(models.AttachmentContent{MimeType: "image/png", Data: pngOf(t, tt.width, tt.height)}, tt.maxWidth)
			require.NoError(t, err)
			assert.Equal(t, PreviewMimeType, got.MimeType)

			w, h, format := decodedSize(t, got.Data)
			assert.Equal(t, "jpeg", format)
			assert.Equal(t, tt.wantWidth, w)
			assert.Equal(t, tt.wantHeight, h)
		})
	}
}

func TestScaler_PreviewUnsupported(t *testing.T) {
	s := NewScaler()

	_, err := s.Preview(models.AttachmentContent{MimeType: "application/pdf", Data: []byte("%PDF-1.7")}, 100)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = s.Preview(models.AttachmentContent{MimeType: "text/plain", Data: pngOf(t, 4, 4)}, 100)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = s.Preview(models.AttachmentContent{MimeType: "image/png", Data: pngOf(t, 4, 4)}, 0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestScaler_Shrink(t *testing.T) {
	s := NewScaler()

	small := models.AttachmentContent{MimeType: "image/png", Data: pngOf(t, 30, 20)}
	assert.Equal(t, small, s.Shrink(small, 40))

	tall := models.AttachmentContent{MimeType: "image/gif", Data: pngOf(t, 20, 80)}
	got := s.Shrink(tall, 40)
	assert.Equal(t, ShrunkMimeType, got.MimeType)
	w, h, _ := decodedSize(t, got.Data)
	assert.Equal(t, 10, w)
	assert.Equal(t, 40, h)

	text := models.AttachmentContent{MimeType: "text/plain", Data: []byte("not an image")}
	assert.Equal(t, text, s.Shrink(text, 40))
}

func TestIsPreviewable(t *testing.T) {
	assert.True(t, IsPreviewable("image/webp"))
	assert.True(t, IsPreviewable("Application/PDF"))
	assert.False(t, IsPreviewable("text/csv"))
}
