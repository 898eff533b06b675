// Package physics wraps a Chipmunk space behind handles. It reports contacts
// as start and stop events keyed by body handle so callers can map them back
// to their own identifiers.
package physics

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/plus3/tickecs/game/geom"
)

// ErrNoSuchBody is returned when a handle does not name a live body.
var ErrNoSuchBody = errors.New("no such body")

// Every collider shares one collision type so a single handler sees all pairs.
const bodyCollisionType cp.CollisionType = 1

// slideIterations bounds how many overlaps MoveAndSlide resolves per move.
const slideIterations = 4

// CollisionEvent reports two bodies starting or stopping to touch. A is
// always the lower handle.
type CollisionEvent struct {
	A, B    Handle
	Started bool
}

type pair struct {
	a, b Handle
}

func makePair(a, b Handle) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

// World owns the bodies and steps them.
type World struct {
	space    *cp.Space
	bodies   map[Handle]*Body
	next     Handle
	contacts map[pair]struct{}
	events   []CollisionEvent
}

// NewWorld creates an empty world with the given gravity.
func NewWorld(gravity geom.Vec2) *World {
	w := &World{
		space:    cp.NewSpace(),
		bodies:   make(map[Handle]*Body),
		contacts: make(map[pair]struct{}),
	}
	w.space.SetGravity(gravity.Vector())

	handler := w.space.NewCollisionHandler(bodyCollisionType, bodyCollisionType)
	handler.BeginFunc = w.begin
	handler.SeparateFunc = w.separate
	return w
}

// Gravity returns the acceleration applied to dynamic bodies.
func (w *World) Gravity() geom.Vec2 {
	return geom.Vec2(w.space.Gravity())
}

func handles(arb *cp.Arbiter) (pair, bool) {
	a, b := arb.Shapes()
	ha, okA := a.UserData.(Handle)
	hb, okB := b.UserData.(Handle)
	if !okA || !okB {
		return pair{}, false
	}
	return makePair(ha, hb), true
}

// begin records a new contact. Pairs without a dynamic body are ignored, so
// kinematic bodies pass through walls unless moved with MoveAndSlide.
func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Bodies()
	if a.GetType() != cp.BODY_DYNAMIC && b.GetType() != cp.BODY_DYNAMIC {
		return false
	}
	p, ok := handles(arb)
	if !ok {
		return false
	}
	w.contacts[p] = struct{}{}
	w.events = append(w.events, CollisionEvent{A: p.a, B: p.b, Started: true})
	return true
}

// separate is also called for ignored pairs and for removed shapes; only
// contacts begin accepted produce a stop event.
func (w *World) separate(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	p, ok := handles(arb)
	if !ok {
		return
	}
	if _, touching := w.contacts[p]; !touching {
		return
	}
	delete(w.contacts, p)
	w.events = append(w.events, CollisionEvent{A: p.a, B: p.b, Started: false})
}

// CreateBody adds a body and returns its handle.
func (w *World) CreateBody(desc BodyDesc) Handle {
	w.next++
	h := w.next
	b := newBody(h, desc)
	w.space.AddBody(b.body)
	w.space.AddShape(b.collider)
	w.bodies[h] = b
	return h
}

// RemoveBody deletes the body. Contacts it was part of end silently.
func (w *World) RemoveBody(h Handle) error {
	b, ok := w.bodies[h]
	if !ok {
		return fmt.Errorf("remove body %d: %w", h, ErrNoSuchBody)
	}
	for p := range w.contacts {
		if p.a == h || p.b == h {
			delete(w.contacts, p)
		}
	}
	w.space.RemoveShape(b.collider)
	w.space.RemoveBody(b.body)
	delete(w.bodies, h)
	return nil
}

// Body returns the body for h.
func (w *World) Body(h Handle) (*Body, bool) {
	b, ok := w.bodies[h]
	return b, ok
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

func (w *World) body(op string, h Handle) (*Body, error) {
	b, ok := w.bodies[h]
	if !ok {
		return nil, fmt.Errorf("%s body %d: %w", op, h, ErrNoSuchBody)
	}
	return b, nil
}

// SetTranslation teleports the body.
func (w *World) SetTranslation(h Handle, p geom.Vec2) error {
	b, err := w.body("translate", h)
	if err != nil {
		return err
	}
	w.place(b, p, b.body.Angle())
	return nil
}

// SetRotation sets the body's rotation in radians.
func (w *World) SetRotation(h Handle, angle float64) error {
	b, err := w.body("rotate", h)
	if err != nil {
		return err
	}
	w.place(b, geom.Vec2(b.body.Position()), angle)
	return nil
}

// place moves a body. Static shapes live in an index that only learns their
// new bounds when they are added, so they are re-added.
func (w *World) place(b *Body, p geom.Vec2, angle float64) {
	if b.kind != Static {
		b.body.SetPosition(p.Vector())
		b.body.SetAngle(angle)
		return
	}
	w.space.RemoveShape(b.collider)
	b.body.SetPosition(p.Vector())
	b.body.SetAngle(angle)
	w.space.AddShape(b.collider)
}

// SetVelocity replaces the body's linear velocity.
func (w *World) SetVelocity(h Handle, v geom.Vec2) error {
	b, err := w.body("set velocity of", h)
	if err != nil {
		return err
	}
	b.body.SetVelocityVector(v.Vector())
	return nil
}

// ApplyImpulse changes a dynamic body's velocity by impulse / mass.
func (w *World) ApplyImpulse(h Handle, impulse geom.Vec2) error {
	b, err := w.body("apply impulse to", h)
	if err != nil {
		return err
	}
	b.body.ApplyImpulseAtWorldPoint(impulse.Vector(), b.body.Position())
	return nil
}

// MoveAndSlide moves the body by delta and then pushes it back out of any
// static body it ends up overlapping, so it slides along walls. It returns
// the movement actually applied.
func (w *World) MoveAndSlide(h Handle, delta geom.Vec2) (geom.Vec2, error) {
	b, err := w.body("move", h)
	if err != nil {
		return geom.Vec2{}, err
	}
	start := b.body.Position()
	b.body.SetPosition(start.Add(delta.Vector()))
	if b.collider.Sensor() {
		return delta, nil
	}

	for range slideIterations {
		push, overlapping := w.deepestStaticOverlap(b)
		if !overlapping {
			break
		}
		b.body.SetPosition(b.body.Position().Add(push))
	}
	return geom.Vec2(b.body.Position().Sub(start)), nil
}

// deepestStaticOverlap returns the push that separates b from the static
// body it penetrates the most.
func (w *World) deepestStaticOverlap(b *Body) (cp.Vector, bool) {
	var push cp.Vector
	deepest := 0.0
	w.space.ShapeQuery(b.collider, func(other *cp.Shape, points *cp.ContactPointSet) {
		if other.Sensor() || other.Body().GetType() != cp.BODY_STATIC {
			return
		}
		for i := range points.Count {
			// Distance is negative while overlapping and Normal points from
			// b toward other.
			if d := points.Points[i].Distance; d < deepest {
				deepest = d
				push = points.Normal.Mult(d)
			}
		}
	})
	return push, deepest < 0
}

// Step advances the simulation by dt seconds and returns the contacts that
// started or stopped during the step, ordered by handle pair. A zero dt does
// nothing.
func (w *World) Step(dt float64) []CollisionEvent {
	w.events = w.events[:0]
	w.space.Step(dt)

	events := slices.Clone(w.events)
	slices.SortFunc(events, func(x, y CollisionEvent) int {
		return cmp.Or(cmp.Compare(x.A, y.A), cmp.Compare(x.B, y.B))
	})
	return events
}
