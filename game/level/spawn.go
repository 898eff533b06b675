package level

import (
	"fmt"
	"image/color"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/component"
	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/physics"
	"github.com/plus3/tickecs/game/render"
)

// WallColor is the wireframe color walls are drawn with.
var WallColor = color.RGBA{G: 0xff, A: 0xff}

// Spawn creates the level's walls, props and lights. Each wall and prop gets a
// body in bodies and an entity carrying its Collider handle. It returns the
// entities it created in document order.
func (l *Level) Spawn(world *ecs.World, bodies *physics.World) ([]ecs.EntityId, error) {
	var spawned []ecs.EntityId
	add := func(what string, i int, components ...any) error {
		e, err := world.Spawn(components...)
		if err != nil {
			return fmt.Errorf("spawn %s %d: %w", what, i, err)
		}
		spawned = append(spawned, e)
		return nil
	}

	// walls are fully elastic so each prop's own restitution decides its bounce
	for i, w := range l.Walls {
		h := bodies.CreateBody(physics.BodyDesc{
			Type:        physics.Static,
			Shape:       physics.BoxShape(w.Size[0], w.Size[1]),
			Position:    w.Position.Vec(),
			Restitution: 1,
		})
		err := add("wall", i,
			component.At(w.Position.Vec()),
			component.Mesh{Shape: render.ShapeRect, Size: w.Size.Vec(), Color: WallColor, Wireframe: true},
			component.Collider{Handle: h},
		)
		if err != nil {
			return spawned, err
		}
	}

	for i, p := range l.Props {
		desc := physics.BodyDesc{
			Type:        physics.Dynamic,
			Position:    p.Position.Vec(),
			Mass:        p.Mass,
			Restitution: p.Restitution,
			Damping:     p.Damping,
		}
		mesh := component.Mesh{Color: color.RGBA(p.Color)}
		if p.Shape == "box" {
			desc.Shape = physics.BoxShape(p.Size[0], p.Size[1])
			mesh.Shape = render.ShapeRect
			mesh.Size = p.Size.Vec()
		} else {
			desc.Shape = physics.CircleShape(p.Radius)
			mesh.Shape = render.ShapeCircle
			mesh.Size = geom.V(p.Radius*2, p.Radius*2)
		}
		components := []any{
			component.At(p.Position.Vec()),
			mesh,
			component.Collider{Handle: bodies.CreateBody(desc)},
		}
		if p.Alias != "" {
			components = append(components, component.Alias(p.Alias))
		}
		if err := add("prop", i, components...); err != nil {
			return spawned, err
		}
	}

	for i, light := range l.Lights {
		err := add("light", i,
			component.At(geom.Vec2{}),
			component.AmbientLight{Color: color.RGBA(light.Color), Intensity: light.Intensity},
		)
		if err != nil {
			return spawned, err
		}
	}
	return spawned, nil
}
