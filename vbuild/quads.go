// SPDX-License-Identifier: Unlicense OR MIT

package vbuild

import (
	"image/color"

	"richtext.dev/layout/f32"
)

func colorFloats(c color.NRGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// appendGlyphQuad appends two triangles covering glyph.Vertices
// translated by (x,y), with the glyph's per-corner texture
// coordinates and a flat vertex color.
func appendGlyphQuad(vl *VertexList, x, y float32, vertices f32.Rectangle, tex [4][3]float32, col color.NRGBA) {
	x0, y0 := x+vertices.Min.X, y+vertices.Min.Y
	x1, y1 := x+vertices.Max.X, y+vertices.Max.Y
	cf := colorFloats(col)
	// Corner order matches tex: 0=(x0,y0) 1=(x1,y0) 2=(x1,y1) 3=(x0,y1).
	appendTri(vl, x0, y0, tex[0], cf)
	appendTri(vl, x1, y0, tex[1], cf)
	appendTri(vl, x1, y1, tex[2], cf)
	appendTri(vl, x0, y0, tex[0], cf)
	appendTri(vl, x1, y1, tex[2], cf)
	appendTri(vl, x0, y1, tex[3], cf)
}

// appendRectQuad appends a flat-colored, untextured quad spanning
// (x1,y1)-(x2,y2), used for backgrounds.
func appendRectQuad(vl *VertexList, x1, y1, x2, y2 float32, col color.NRGBA) {
	cf := colorFloats(col)
	var zero [3]float32
	appendTri(vl, x1, y1, zero, cf)
	appendTri(vl, x2, y1, zero, cf)
	appendTri(vl, x2, y2, zero, cf)
	appendTri(vl, x1, y1, zero, cf)
	appendTri(vl, x2, y2, zero, cf)
	appendTri(vl, x1, y2, zero, cf)
}

func appendTri(vl *VertexList, x, y float32, tex [3]float32, col [4]float32) {
	vl.Positions = append(vl.Positions, x, y)
	vl.TexCoords = append(vl.TexCoords, tex[0], tex[1], tex[2])
	vl.Colors = append(vl.Colors, col[0], col[1], col[2], col[3])
}

// appendLine appends a single two-point line primitive, used for
// underlines.
func appendLine(vl *VertexList, x1, y1, x2, y2 float32, col color.NRGBA) {
	cf := colorFloats(col)
	var zero [3]float32
	vl.Positions = append(vl.Positions, x1, y1, x2, y2)
	vl.TexCoords = append(vl.TexCoords, zero[0], zero[1], zero[2], zero[0], zero[1], zero[2])
	vl.Colors = append(vl.Colors, cf[0], cf[1], cf[2], cf[3], cf[0], cf[1], cf[2], cf[3])
}
