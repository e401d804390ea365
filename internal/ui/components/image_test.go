// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestGeneratedImageSrc(t *testing.T) {
	tests := []struct {
		name string
		img  GeneratedImage
		want string
	}{
		{"default type", GeneratedImage{Base64: "AAAA"}, "data:image/png;base64,AAAA"},
		{"explicit type", GeneratedImage{Base64: "BBBB", MediaType: "image/jpeg"}, "data:image/jpeg;base64,BBBB"},
		{"from bytes", GeneratedImage{Bytes: []byte("hi")}, "data:image/png;base64,aGk="},
		{"empty", GeneratedImage{}, "data:image/png;base64,"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.img.Src())
		})
	}
}

func TestGeneratedImageInfo(t *testing.T) {
	data := tinyPNG(t, 16, 8)
	img := GeneratedImage{Base64: base64.StdEncoding.EncodeToString(data)}

	info, err := img.Info()
	require.NoError(t, err)
	assert.Equal(t, 16, info.Width)
	assert.Equal(t, 8, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, len(data), info.Size)

	raw := GeneratedImage{Bytes: data}
	info, err = raw.Info()
	require.NoError(t, err)
	assert.Equal(t, 16, info.Width)
}

func TestGeneratedImageInfoErrors(t *testing.T) {
	_, err := GeneratedImage{}.Info()
	assert.ErrorIs(t, err, ErrNoImageData)

	_, err = GeneratedImage{Base64: "not base64!!"}.Info()
	assert.Error(t, err)

	// valid base64, unknown format: size only
	info, err := GeneratedImage{Base64: base64.StdEncoding.EncodeToString([]byte("plain text"))}.Info()
	require.NoError(t, err)
	assert.Equal(t, 10, info.Size)
	assert.Zero(t, info.Width)
}

func TestImageView(t *testing.T) {
	img := NewImage(GeneratedImage{Base64: base64.StdEncoding.EncodeToString(tinyPNG(t, 2, 2))}, "", testTheme())
	assert.Equal(t, DefaultImageAlt, img.Alt())

	v := img.View()
	assert.Contains(t, v, DefaultImageAlt)
	assert.Contains(t, v, "image/png")
	assert.Contains(t, v, "2x2")
	assert.Contains(t, v, " B")
}

func TestImageViewInvalidData(t *testing.T) {
	img := NewImage(GeneratedImage{Base64: "%%%"}, "Broken", testTheme())

	assert.NotPanics(t, func() { _ = img.View() })
	assert.Contains(t, img.View(), "[X]")
	assert.Contains(t, img.Summary(), "Broken")
}

func TestImageSection(t *testing.T) {
	png := base64.StdEncoding.EncodeToString(tinyPNG(t, 3, 3))

	s := NewImageSection("", testTheme(), GeneratedImage{Base64: png})
	assert.Equal(t, DefaultSectionTitle, s.Title())
	assert.Equal(t, 1, s.Len())
	require.NotNil(t, s.First())
	assert.Equal(t, png, s.First().Base64)
	assert.Nil(t, NewImageSection("", testTheme()).First())

	s = NewImageSection("a red fox", testTheme(), GeneratedImage{Base64: png})
	s.Add(GeneratedImage{Base64: png, MediaType: "image/png"}, "second")
	s.SetWidth(50)
	assert.Equal(t, "Generated: a red fox", s.Title())
	assert.Equal(t, 2, s.Len())

	v := s.View()
	assert.Contains(t, v, "Generated: a red fox")
	assert.Contains(t, v, DefaultSectionAlt)
	assert.Contains(t, v, "second")
}
