package platform

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/render"
)

const wireframeWidth = 1.5

// ImageSource resolves a sprite texture path. *assets.Cache[*ebiten.Image]
// satisfies it.
type ImageSource interface {
	Get(path string) (*ebiten.Image, error)
}

// Renderer draws a render.Scene onto an ebiten image, lit by the scene's
// ambient light.
type Renderer struct {
	images  ImageSource
	logger  *zap.Logger
	missing map[string]bool

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderer(images ImageSource, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		images:  images,
		logger:  logger,
		missing: make(map[string]bool),
	}
}

// Draw clears screen to the scene background and draws every mesh and
// sprite node in layer order.
func (r *Renderer) Draw(screen *ebiten.Image, scene *render.Scene) {
	ambient := scene.Ambient()
	screen.Fill(tint(scene.Background, ambient))

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	cam := scene.Camera
	zoom := cam.Zoom
	if zoom == 0 {
		zoom = 1
	}

	for _, node := range scene.Nodes() {
		center := cam.WorldToScreen(node.Position, w, h)
		rotation := node.Rotation - cam.Rotation
		scale := node.Scale
		if scale == (geom.Vec2{}) {
			scale = geom.V(1, 1)
		}
		scale = geom.V(scale.X*zoom, scale.Y*zoom)

		switch node.Kind {
		case render.NodeMesh:
			r.drawMesh(screen, node, center, rotation, scale, tint(node.Color, ambient))
		case render.NodeSprite:
			r.drawSprite(screen, node, center, rotation, scale, ambient)
		}
	}
}

func (r *Renderer) drawMesh(screen *ebiten.Image, node *render.Node, center geom.Vec2, rotation float64, scale geom.Vec2, clr color.RGBA) {
	size := geom.V(node.Size.X*scale.X, node.Size.Y*scale.Y)
	path := meshPath(node.Shape, center, rotation, size)
	r.drawPath(screen, path, clr, node.Wireframe)
}

// meshPath outlines shape centred on center. Rects and capsules are rotated
// by rotation; a capsule's straight sides run along its local Y axis.
func meshPath(shape render.Shape, center geom.Vec2, rotation float64, size geom.Vec2) *vector.Path {
	var path vector.Path
	local := func(x, y float64) geom.Vec2 {
		return geom.V(x, y).Rotate(rotation).Add(center)
	}

	switch shape {
	case render.ShapeCircle:
		path.Arc(float32(center.X), float32(center.Y), float32(size.X/2), 0, 2*math.Pi, vector.Clockwise)

	case render.ShapeCapsule:
		radius := size.X / 2
		half := math.Max(size.Y/2-radius, 0)
		top := local(0, -half)
		bottom := local(0, half)
		path.Arc(float32(top.X), float32(top.Y), float32(radius), float32(rotation+math.Pi), float32(rotation+2*math.Pi), vector.Clockwise)
		path.Arc(float32(bottom.X), float32(bottom.Y), float32(radius), float32(rotation), float32(rotation+math.Pi), vector.Clockwise)

	default:
		hw, hh := size.X/2, size.Y/2
		corners := [4]geom.Vec2{local(-hw, -hh), local(hw, -hh), local(hw, hh), local(-hw, hh)}
		path.MoveTo(float32(corners[0].X), float32(corners[0].Y))
		for _, c := range corners[1:] {
			path.LineTo(float32(c.X), float32(c.Y))
		}
	}

	path.Close()
	return &path
}

func (r *Renderer) drawPath(screen *ebiten.Image, path *vector.Path, clr color.RGBA, wireframe bool) {
	r.vertices, r.indices = r.vertices[:0], r.indices[:0]
	if wireframe {
		r.vertices, r.indices = path.AppendVerticesAndIndicesForStroke(r.vertices, r.indices, &vector.StrokeOptions{
			Width:    wireframeWidth,
			LineJoin: vector.LineJoinRound,
		})
	} else {
		r.vertices, r.indices = path.AppendVerticesAndIndicesForFilling(r.vertices, r.indices)
	}

	cr, cg, cb, ca := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff, float32(clr.A)/0xff
	for i := range r.vertices {
		r.vertices[i].SrcX = 1
		r.vertices[i].SrcY = 1
		r.vertices[i].ColorR = cr * ca
		r.vertices[i].ColorG = cg * ca
		r.vertices[i].ColorB = cb * ca
		r.vertices[i].ColorA = ca
	}

	screen.DrawTriangles(r.vertices, r.indices, r.whiteImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// whiteImage is the 1x1 source every vector shape samples.
func (r *Renderer) whiteImage() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.white
}

func (r *Renderer) drawSprite(screen *ebiten.Image, node *render.Node, center geom.Vec2, rotation float64, scale geom.Vec2, ambient [3]float64) {
	if r.images == nil || node.Texture == "" {
		return
	}
	img, err := r.images.Get(node.Texture)
	if err != nil {
		if !r.missing[node.Texture] {
			r.missing[node.Texture] = true
			r.logger.Warn("sprite texture unavailable", zap.String("texture", node.Texture), zap.Error(err))
		}
		return
	}

	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	size := node.Size
	if size == (geom.Vec2{}) {
		size = geom.V(iw, ih)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(size.X/iw*scale.X, size.Y/ih*scale.Y)
	op.GeoM.Translate(node.Offset.X*scale.X, node.Offset.Y*scale.Y)
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.Scale(float32(ambient[0]), float32(ambient[1]), float32(ambient[2]), 1)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// tint scales c's colour channels by the ambient light, leaving alpha.
func tint(c color.RGBA, ambient [3]float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * ambient[0])),
		G: uint8(math.Round(float64(c.G) * ambient[1])),
		B: uint8(math.Round(float64(c.B) * ambient[2])),
		A: c.A,
	}
}
