// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
	"github.com/jeranaias/rigrun-elements/internal/util"
)

// =============================================================================
// GENERATED IMAGE
// =============================================================================

// Image defaults.
const (
	DefaultImageMediaType = "image/png"
	DefaultImageAlt       = "Generated image"
	DefaultSectionAlt     = "AI generated image"
	DefaultSectionTitle   = "Generated Image"
)

// ErrNoImageData is returned when an image carries neither base64 nor bytes.
var ErrNoImageData = errors.New("image has no data")

// GeneratedImage is image output from a model.
type GeneratedImage struct {
	Base64 string
	// Bytes is the raw data; used when Base64 is empty.
	Bytes     []byte
	MediaType string
}

// Type returns the media type, defaulting to image/png.
func (g GeneratedImage) Type() string {
	if g.MediaType == "" {
		return DefaultImageMediaType
	}
	return g.MediaType
}

// Src returns the data URI "data:<mediaType>;base64,<base64>".
func (g GeneratedImage) Src() string {
	b64 := g.Base64
	if b64 == "" && len(g.Bytes) > 0 {
		b64 = base64.StdEncoding.EncodeToString(g.Bytes)
	}
	return "data:" + g.Type() + ";base64," + b64
}

// Data returns the decoded image bytes.
func (g GeneratedImage) Data() ([]byte, error) {
	if g.Base64 == "" {
		if len(g.Bytes) == 0 {
			return nil, ErrNoImageData
		}
		return g.Bytes, nil
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(g.Base64))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	return data, nil
}

// ImageInfo describes decoded image data.
type ImageInfo struct {
	Size   int
	Width  int
	Height int
	// Format is the decoder name ("png", "jpeg", "gif"); empty when the
	// data is not a format we can read.
	Format string
}

// Info decodes the image header. Undecodable but valid base64 still
// reports its size.
func (g GeneratedImage) Info() (ImageInfo, error) {
	data, err := g.Data()
	if err != nil {
		return ImageInfo{}, err
	}
	info := ImageInfo{Size: len(data)}
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		info.Width = cfg.Width
		info.Height = cfg.Height
		info.Format = format
	}
	return info, nil
}

// =============================================================================
// IMAGE COMPONENT
// =============================================================================

// Image renders a GeneratedImage as a framed caption. Terminals cannot be
// relied on to show pixels, so the frame describes the image instead.
type Image struct {
	img   GeneratedImage
	alt   string
	theme *styles.Theme
	width int
}

// NewImage creates an image view. An empty alt uses DefaultImageAlt.
func NewImage(img GeneratedImage, alt string, theme *styles.Theme) Image {
	if alt == "" {
		alt = DefaultImageAlt
	}
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	return Image{img: img, alt: alt, theme: theme, width: 60}
}

// Alt returns the alt text.
func (i Image) Alt() string { return i.alt }

// Source returns the underlying image.
func (i Image) Source() GeneratedImage { return i.img }

// SetWidth sets the maximum render width.
func (i *Image) SetWidth(w int) { i.width = w }

// Meta returns the description line: media type, dimensions, size.
func (i Image) Meta() (string, error) {
	info, err := i.img.Info()
	if err != nil {
		return "", err
	}
	parts := []string{i.img.Type()}
	if info.Width > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", info.Width, info.Height))
	}
	parts = append(parts, humanize.Bytes(uint64(info.Size)))
	return strings.Join(parts, "  "), nil
}

// Summary renders a single line for embedding in other components.
func (i Image) Summary() string {
	th := i.theme
	meta, err := i.Meta()
	if err != nil {
		return th.ImageError.Render(styles.StatusIndicators.Error + " " + i.alt + ": " + err.Error())
	}
	return th.ImageAlt.Render("[image] "+i.alt) + " " + th.ImageMeta.Render("("+meta+")")
}

// View renders the framed image description.
func (i Image) View() string {
	th := i.theme
	inner := contentWidth(i.width, 4)

	alt := th.ImageAlt.Render(util.TruncateWidth(i.alt, inner))
	meta, err := i.Meta()
	var second string
	if err != nil {
		second = th.ImageError.Render(styles.StatusIndicators.Error + " " + err.Error())
	} else {
		second = th.ImageMeta.Render(util.TruncateWidth(meta, inner))
	}
	return th.ImageFrame.MaxWidth(i.width).Render(alt + "\n" + second)
}

// =============================================================================
// IMAGE SECTION
// =============================================================================

// ImageSection groups generated images under a title.
type ImageSection struct {
	prompt string
	images []Image
	theme  *styles.Theme
	width  int
}

// NewImageSection creates a section for prompt. Images without alt text use
// DefaultSectionAlt.
func NewImageSection(prompt string, theme *styles.Theme, imgs ...GeneratedImage) ImageSection {
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	s := ImageSection{prompt: prompt, theme: theme, width: 60}
	for _, g := range imgs {
		s.images = append(s.images, NewImage(g, DefaultSectionAlt, theme))
	}
	return s
}

// Add appends an image with explicit alt text.
func (s *ImageSection) Add(img GeneratedImage, alt string) {
	if alt == "" {
		alt = DefaultSectionAlt
	}
	s.images = append(s.images, NewImage(img, alt, s.theme))
}

// Len returns the number of images.
func (s ImageSection) Len() int { return len(s.images) }

// First returns the first image, or nil for an empty section.
func (s ImageSection) First() *GeneratedImage {
	if len(s.images) == 0 {
		return nil
	}
	img := s.images[0].Source()
	return &img
}

// SetWidth sets the render width.
func (s *ImageSection) SetWidth(w int) { s.width = w }

// Title returns "Generated: <prompt>" or the default title.
func (s ImageSection) Title() string {
	if s.prompt == "" {
		return DefaultSectionTitle
	}
	return "Generated: " + s.prompt
}

// View renders the title and every image, centered.
func (s ImageSection) View() string {
	title := s.theme.SectionTitle.Render(util.TruncateWidth(s.Title(), s.width))
	blocks := []string{title}
	for _, img := range s.images {
		img.SetWidth(s.width)
		blocks = append(blocks, lipgloss.PlaceHorizontal(s.width, lipgloss.Center, img.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
