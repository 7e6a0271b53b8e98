package models

// ContentShape classifies a captured payload by which fields are present.
type ContentShape string

const (
	ShapeText         ContentShape = "text"
	ShapeImage        ContentShape = "image"
	ShapeTextAndImage ContentShape = "text-and-image"
	ShapeNone         ContentShape = ""
)

// CapturedContent is what a pipeline run gathered from the page: selected
// text and/or the URL of a relevant image. ImageURL points at the external
// host at capture time and at the repository after asset publishing.
type CapturedContent struct {
	Text     string
	ImageURL string
}

// Shape derives the content shape from which fields are non-empty.
// ShapeNone means the run has nothing to build an issue from.
func (c CapturedContent) Shape() ContentShape {
	switch {
	case c.Text != "" && c.ImageURL != "":
		return ShapeTextAndImage
	case c.Text != "":
		return ShapeText
	case c.ImageURL != "":
		return ShapeImage
	default:
		return ShapeNone
	}
}

// IsEmpty reports whether the run captured neither text nor an image.
func (c CapturedContent) IsEmpty() bool {
	return c.Text == "" && c.ImageURL == ""
}
