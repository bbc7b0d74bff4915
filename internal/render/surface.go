// Package render draws the roulette wheel onto a backend-neutral Surface.
//
// Everything here works in canvas coordinates with y pointing down, so
// angles grow clockwise on screen. The window backend lives with the game
// loop; GGSurface renders offscreen for exports and tests.
package render

import (
	"image"
	"image/color"
)

// Point is a position on a surface.
type Point struct {
	X, Y float64
}

// Placement positions an image by its centre.
type Placement struct {
	Center   Point
	W, H     float64
	Rotation float64 // radians, clockwise
	Alpha    float64
}

// Text is a single line of text.
type Text struct {
	S string
	// At is the pivot. The text is rotated about it, then shifted Offset
	// pixels along the rotated x axis.
	At       Point
	Rotation float64
	Offset   float64
	Size     float64
	// AlignX is 0 to start at the anchor, 0.5 to centre and 1 to end there.
	AlignX float64
	Color  color.Color
}

// Surface is the drawing backend.
type Surface interface {
	FillPolygon(pts []Point, c color.Color)
	StrokePolygon(pts []Point, width float64, c color.Color)
	FillCircle(center Point, r float64, c color.Color)
	DrawImage(img image.Image, p Placement)
	DrawText(t Text)
}
