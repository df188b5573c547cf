/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

var ErrUnknownImage = errors.New("no such image")

// FilterImages returns the images whose caption contains query, ignoring
// case. A blank query returns every image.
func FilterImages(images []Image, query string) []Image {
	if strings.TrimSpace(query) == "" {
		return append([]Image(nil), images...)
	}

	// Casers keep state, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]Image, 0, len(images))
	for _, img := range images {
		if strings.Contains(fold.String(img.Alt), needle) {
			out = append(out, img)
		}
	}

	return out
}

// Gallery is a searchable grid with a single selection. It starts out
// loading; Load hands it the catalog.
type Gallery struct {
	Loading  bool
	Query    string
	Selected string

	images   []Image
	filtered []Image
}

func NewGallery() *Gallery {
	return &Gallery{Loading: true}
}

func (g *Gallery) Load(images []Image) {
	g.images = append([]Image(nil), images...)
	g.Loading = false
	g.filtered = FilterImages(g.images, g.Query)
}

// Search updates the query and recomputes the visible images.
func (g *Gallery) Search(query string) {
	g.Query = query
	g.filtered = FilterImages(g.images, query)
}

// Visible returns the images matching the current query.
func (g *Gallery) Visible() []Image {
	return append([]Image(nil), g.filtered...)
}

// Select marks image id and returns it.
func (g *Gallery) Select(id string) (Image, error) {
	for _, img := range g.images {
		if img.ID == id {
			g.Selected = id

			return img, nil
		}
	}

	return Image{}, ErrUnknownImage
}

// Selection returns the selected image, if any.
func (g *Gallery) Selection() (Image, bool) {
	for _, img := range g.images {
		if img.ID == g.Selected {
			return img, true
		}
	}

	return Image{}, false
}
