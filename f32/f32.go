// SPDX-License-Identifier: Unlicense OR MIT

/*
Package f32 is a float32 implementation of package image's
Point and Rectangle.

The coordinate space has the origin in the top left
corner with the axes extending right and down.
*/
package f32

// A Point is a two dimensional point.
type Point struct {
	X, Y float32
}

// A Rectangle contains the points (X, Y) where Min.X <= X < Max.X,
// Min.Y <= Y < Max.Y. Both types are used as plain geometry data
// (glyph quads, texture rectangles) rather than through an affine
// transform pipeline, so only the struct shapes are carried here.
type Rectangle struct {
	Min, Max Point
}
