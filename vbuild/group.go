// SPDX-License-Identifier: Unlicense OR MIT

// Package vbuild implements the vertex builder described in spec.md
// §4.6: per-line, per-box emission of foreground glyph quads,
// background quads and underlines into a small rendering-group DAG,
// grounded on the pyglet original's TextLayoutGroup hierarchy
// (layout.py:460-633) and _GlyphBox.place (layout.py:274-361).
package vbuild

import "richtext.dev/layout/font"

// Order values mirror the three-tier draw order the original groups
// express: background under everything, glyphs on top of background,
// decoration (underline) on top of glyphs.
const (
	OrderBackground = 0
	OrderForeground = 1
	OrderDecoration = 2
)

// Group is one node in the rendering DAG: state shared by every
// vertex list attached to it (a texture, under a parent group, at a
// draw order).
type Group struct {
	Texture font.TextureID
	Parent  *Group
	Order   int
}

type groupKey struct {
	texture font.TextureID
	parent  *Group
	order   int
}

// Batch owns the Group DAG and the vertex lists attached to it.
// Groups are deduplicated by (texture, parent, order) value equality
// so that boxes sharing a texture under the same parent coalesce into
// one draw call, per spec.md §4.6's grouping rule.
type Batch struct {
	groups map[groupKey]*Group
	lists  map[*VertexList]struct{}
	pool   *bufferPool
}

// NewBatch returns an empty Batch.
func NewBatch() *Batch {
	return &Batch{
		groups: make(map[groupKey]*Group),
		lists:  make(map[*VertexList]struct{}),
		pool:   newBufferPool(),
	}
}

// GroupFor returns the (possibly shared) Group for (order, texture,
// parent), creating it on first use.
func (b *Batch) GroupFor(order int, texture font.TextureID, parent *Group) *Group {
	k := groupKey{texture: texture, parent: parent, order: order}
	if g, ok := b.groups[k]; ok {
		return g
	}
	g := &Group{Texture: texture, Parent: parent, Order: order}
	b.groups[k] = g
	return g
}

// VertexList is a batch of same-primitive, same-group vertex data:
// triangles for glyph and background quads, lines for underlines.
type VertexList struct {
	Group     *Group
	Mode      Mode
	Positions []float32
	TexCoords []float32
	Colors    []float32
}

// Mode is the primitive type a VertexList draws.
type Mode int

const (
	Triangles Mode = iota
	Lines
)

// Add attaches list to the batch, returning a handle the caller can
// later pass to Delete. Positions/TexCoords/Colors backing arrays are
// borrowed from the batch's pool and must not be reused by the caller
// after Add.
func (b *Batch) Add(list *VertexList) *VertexList {
	b.lists[list] = struct{}{}
	return list
}

// Delete releases list's scratch buffers back to the pool and removes
// it from the batch.
func (b *Batch) Delete(list *VertexList) {
	if _, ok := b.lists[list]; !ok {
		return
	}
	delete(b.lists, list)
	b.pool.put(list.Positions)
	b.pool.put(list.TexCoords)
	b.pool.put(list.Colors)
	list.Positions, list.TexCoords, list.Colors = nil, nil, nil
}

// Len reports how many vertex lists are currently attached.
func (b *Batch) Len() int { return len(b.lists) }
