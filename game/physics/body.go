package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/plus3/tickecs/game/geom"
)

// Handle identifies a body in a World. Handles are never reused.
type Handle uint32

// BodyType decides how a body takes part in the simulation.
type BodyType int

const (
	// Static bodies never move and have infinite mass.
	Static BodyType = iota
	// Dynamic bodies are moved by velocity, impulses and collisions.
	Dynamic
	// Kinematic bodies move only by the velocity the caller gives them and
	// push dynamic bodies out of their way.
	Kinematic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	}
	return "unknown"
}

// ShapeKind is the collision shape of a body.
type ShapeKind int

const (
	Circle ShapeKind = iota
	Box
)

// Shape is a circle of Radius or a box of HalfExtents centred on the body.
// Boxes turn with the body's rotation.
type Shape struct {
	Kind        ShapeKind
	Radius      float64
	HalfExtents geom.Vec2
}

// CircleShape returns a circle of radius r.
func CircleShape(r float64) Shape {
	return Shape{Kind: Circle, Radius: r}
}

// BoxShape returns a box of the given full width and height.
func BoxShape(w, h float64) Shape {
	return Shape{Kind: Box, HalfExtents: geom.V(w/2, h/2)}
}

// BodyDesc describes a body to create.
type BodyDesc struct {
	Type     BodyType
	Shape    Shape
	Position geom.Vec2
	Rotation float64
	Velocity geom.Vec2
	// Mass of a dynamic body. Zero means 1.
	Mass float64
	// Restitution of a contact is the product of both bodies' values, so a
	// wall with restitution 1 lets the other body's value decide the bounce.
	Restitution float64
	// Damping is the fraction of velocity lost per second.
	Damping float64
	// Sensor bodies report collisions but are never pushed apart.
	Sensor bool
}

// Body is one collider in a World.
type Body struct {
	handle   Handle
	kind     BodyType
	shape    Shape
	body     *cp.Body
	collider *cp.Shape
}

func newBody(h Handle, desc BodyDesc) *Body {
	var body *cp.Body
	switch desc.Type {
	case Static:
		body = cp.NewStaticBody()
	case Kinematic:
		body = cp.NewKinematicBody()
	default:
		mass := desc.Mass
		if mass <= 0 {
			mass = 1
		}
		// infinite moment: bodies only turn when the caller rotates them
		body = cp.NewBody(mass, cp.INFINITY)
		if desc.Damping > 0 {
			body.SetVelocityUpdateFunc(dampedVelocity(desc.Damping))
		}
	}
	body.SetPosition(desc.Position.Vector())
	body.SetAngle(desc.Rotation)
	if desc.Type != Static {
		body.SetVelocityVector(desc.Velocity.Vector())
	}

	var collider *cp.Shape
	if desc.Shape.Kind == Box {
		collider = cp.NewBox(body, desc.Shape.HalfExtents.X*2, desc.Shape.HalfExtents.Y*2, 0)
	} else {
		collider = cp.NewCircle(body, desc.Shape.Radius, cp.Vector{})
	}
	collider.SetElasticity(desc.Restitution)
	collider.SetSensor(desc.Sensor)
	collider.SetCollisionType(bodyCollisionType)
	collider.UserData = h
	body.UserData = h

	return &Body{
		handle:   h,
		kind:     desc.Type,
		shape:    desc.Shape,
		body:     body,
		collider: collider,
	}
}

func dampedVelocity(damping float64) cp.BodyVelocityFunc {
	return func(body *cp.Body, gravity cp.Vector, spaceDamping, dt float64) {
		cp.BodyUpdateVelocity(body, gravity, spaceDamping*math.Max(0, 1-damping*dt), dt)
	}
}

func (b *Body) Handle() Handle         { return b.handle }
func (b *Body) Type() BodyType         { return b.kind }
func (b *Body) Shape() Shape           { return b.shape }
func (b *Body) Sensor() bool           { return b.collider.Sensor() }
func (b *Body) Translation() geom.Vec2 { return geom.Vec2(b.body.Position()) }
func (b *Body) Rotation() float64      { return b.body.Angle() }
func (b *Body) Velocity() geom.Vec2    { return geom.Vec2(b.body.Velocity()) }
