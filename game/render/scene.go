// Package render keeps the retained scene that systems mirror entity data
// onto. It draws nothing itself; a platform renderer walks the scene once per
// frame.
package render

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/plus3/tickecs/game/geom"
)

// Shape is the outline of a mesh.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRect
	ShapeCapsule
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRect:
		return "rect"
	case ShapeCapsule:
		return "capsule"
	}
	return "unknown"
}

// NodeKind tells the renderer how to draw a node.
type NodeKind int

const (
	NodeMesh NodeKind = iota
	NodeSprite
	NodeLight
)

// Node is one drawable in the scene. Systems own their nodes and update the
// placement fields every frame.
type Node struct {
	Kind     NodeKind
	Layer    int
	Position geom.Vec2
	Rotation float64
	Scale    geom.Vec2

	// mesh
	Shape     Shape
	Size      geom.Vec2
	Color     color.RGBA
	Wireframe bool

	// sprite
	Texture string
	Offset  geom.Vec2

	// light
	Intensity float64

	seq uint64
}

// Camera is the view onto the scene.
type Camera struct {
	Position geom.Vec2
	Rotation float64
	Zoom     float64
}

// Scene is an ordered collection of nodes.
type Scene struct {
	Camera     Camera
	Background color.RGBA

	nodes []*Node
	seq   uint64
}

// NewScene creates an empty scene with the camera at the origin.
func NewScene() *Scene {
	return &Scene{
		Camera:     Camera{Zoom: 1},
		Background: color.RGBA{A: 255},
	}
}

// Add inserts a node. Adding a node already in the scene does nothing.
func (s *Scene) Add(n *Node) {
	if s.Contains(n) {
		return
	}
	s.seq++
	n.seq = s.seq
	s.nodes = append(s.nodes, n)
}

// Remove deletes a node, reporting whether it was present.
func (s *Scene) Remove(n *Node) bool {
	idx := slices.Index(s.nodes, n)
	if idx < 0 {
		return false
	}
	s.nodes = slices.Delete(s.nodes, idx, idx+1)
	return true
}

// Contains reports whether n is in the scene.
func (s *Scene) Contains(n *Node) bool {
	return slices.Contains(s.nodes, n)
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Nodes returns the nodes in draw order: by layer, then by insertion.
func (s *Scene) Nodes() []*Node {
	nodes := slices.Clone(s.nodes)
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return cmp.Or(cmp.Compare(a.Layer, b.Layer), cmp.Compare(a.seq, b.seq))
	})
	return nodes
}

// Ambient sums the light nodes into a single colour multiplier in [0, 1] per
// channel. A scene without lights is fully lit.
func (s *Scene) Ambient() [3]float64 {
	var sum [3]float64
	lit := false
	for _, n := range s.nodes {
		if n.Kind != NodeLight {
			continue
		}
		lit = true
		sum[0] += float64(n.Color.R) / 255 * n.Intensity
		sum[1] += float64(n.Color.G) / 255 * n.Intensity
		sum[2] += float64(n.Color.B) / 255 * n.Intensity
	}
	if !lit {
		return [3]float64{1, 1, 1}
	}
	for i := range sum {
		sum[i] = geom.Clamp(sum[i], 0, 1)
	}
	return sum
}

// WorldToScreen maps a world position to screen pixels for a screen of the
// given size, with the camera centred.
func (c Camera) WorldToScreen(p geom.Vec2, width, height int) geom.Vec2 {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	rel := p.Sub(c.Position).Rotate(-c.Rotation).Scale(zoom)
	return rel.Add(geom.V(float64(width)/2, float64(height)/2))
}
