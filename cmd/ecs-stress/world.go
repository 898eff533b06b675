package main

import (
	"math/rand/v2"

	"github.com/plus3/tickecs/ecs"
)

type Position struct{ X, Y float64 }
type Velocity struct{ DX, DY float64 }
type Health struct{ Current, Max float64 }
type Heat struct{ Value float64 }
type Charge struct{ Value float64 }
type Age struct{ Ticks int }
type Mass struct{ Value float64 }
type Spin struct{ Angle, Rate float64 }

// stressKinds holds a typed handle per component plus, per kind, a function
// that mutates one entity's value.
type stressKinds struct {
	all   []ecs.Kind
	touch map[ecs.Kind]func(w *ecs.World, e ecs.EntityId, dt float64)
	spawn []func() any
}

func registerComponents(registry *ecs.ComponentRegistry) *stressKinds {
	k := &stressKinds{touch: make(map[ecs.Kind]func(*ecs.World, ecs.EntityId, float64))}

	add := func(kind ecs.Kind, touch func(*ecs.World, ecs.EntityId, float64), spawn func() any) {
		k.all = append(k.all, kind)
		k.touch[kind] = touch
		k.spawn = append(k.spawn, spawn)
	}

	pos := ecs.RegisterComponent[Position](registry)
	add(pos.Kind(), func(w *ecs.World, e ecs.EntityId, dt float64) {
		if p, ok := pos.Get(w, e); ok {
			p.X += dt
			p.Y -= dt
		}
	}, func() any { return Position{X: rand.Float64() * 100, Y: rand.Float64() * 100} })

	vel := ecs.RegisterComponent[Velocity](registry)
	add(vel.Kind(), func(w *ecs.World, e ecs.EntityId, dt float64) {
		if v, ok := vel.Get(w, e); ok {
			v.DX *= 1 - dt
			v.DY *= 1 - dt
		}
	}, func() any { return Velocity{DX: rand.Float64(), DY: rand.Float64()} })

	health := ecs.RegisterComponent[Health](registry)
	add(health.Kind(), func(w *ecs.World, e ecs.EntityId, dt float64) {
		if h, ok := health.Get(w, e); ok {
			h.Current = min(h.Current+dt, h.Max)
		}
	}, func() any { return Health{Current: 50, Max: 100} })

	heat := ecs.RegisterComponent[Heat](registry)
	add(heat.Kind(), func(w *ecs.World, e ecs.EntityId, dt float64) {
		if h, ok := heat.Get(w, e); ok {
			h.Value += dt
		}
	}, func() any { return Heat{} })

	charge := ecs.RegisterComponent[Charge](registry)
	add(charge.Kind(), func(w *ecs.World, e ecs.EntityId, dt float64) {
		if c, ok := charge.Get(w, e); ok {
			c.Value -= dt
		}
	}, func() any { return Charge{Value: 1} })

	age := ecs.RegisterComponent[Age](registry)
	add(age.Kind(), func(w *ecs.World, e ecs.EntityId, dt float64) {
		if a, ok := age.Get(w, e); ok {
			a.Ticks++
		}
	}, func() any { return Age{} })

	mass := ecs.RegisterComponent[Mass](registry)
	add(mass.Kind(), func(w *ecs.World, e ecs.EntityId, dt float64) {
		if m, ok := mass.Get(w, e); ok {
			m.Value += dt * 0.01
		}
	}, func() any { return Mass{Value: 1} })

	spin := ecs.RegisterComponent[Spin](registry)
	add(spin.Kind(), func(w *ecs.World, e ecs.EntityId, dt float64) {
		if s, ok := spin.Get(w, e); ok {
			s.Angle += s.Rate * dt
		}
	}, func() any { return Spin{Rate: rand.Float64()} })

	return k
}

// spawnRandomEntity spawns an entity carrying n distinct random components.
func (k *stressKinds) spawnRandomEntity(w *ecs.World, n int) (ecs.EntityId, error) {
	picks := rand.Perm(len(k.spawn))[:min(n, len(k.spawn))]
	components := make([]any, len(picks))
	for i, p := range picks {
		components[i] = k.spawn[p]()
	}
	return w.Spawn(components...)
}

// touchSystem mutates every component it requires on each matched entity.
type touchSystem struct {
	requires []ecs.Kind
	kinds    *stressKinds
	added    int
	removed  int
}

func (s *touchSystem) Requires() []ecs.Kind { return s.requires }

func (s *touchSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	dt := frame.Seconds()
	for e := range entities.All() {
		for _, kind := range s.requires {
			s.kinds.touch[kind](frame.World, e, dt)
		}
	}
}

func (s *touchSystem) OnEntityAdded(*ecs.World, ecs.EntityId)   { s.added++ }
func (s *touchSystem) OnEntityRemoved(*ecs.World, ecs.EntityId) { s.removed++ }

func registerSystems(w *ecs.World, kinds *stressKinds, count int) ([]*touchSystem, error) {
	systems := make([]*touchSystem, 0, count)
	for range count {
		n := rand.IntN(3) + 1
		var requires []ecs.Kind
		for _, p := range rand.Perm(len(kinds.all))[:n] {
			requires = append(requires, kinds.all[p])
		}
		sys := &touchSystem{requires: requires, kinds: kinds}
		if err := w.Register(sys); err != nil {
			return nil, err
		}
		systems = append(systems, sys)
	}
	return systems, nil
}

// churnSystem destroys a share of the live entities every frame and spawns
// replacements, so membership changes and the destroy queue stay busy.
type churnSystem struct {
	kinds     *stressKinds
	rate      float64
	destroyed int
	spawned   int
}

func (s *churnSystem) Requires() []ecs.Kind { return nil }

func (s *churnSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	for e := range entities.All() {
		if rand.Float64() >= s.rate || frame.World.PendingDestruction(e) {
			continue
		}
		if err := frame.World.MarkForDestruction(e); err == nil {
			s.destroyed++
		}
		if _, err := s.kinds.spawnRandomEntity(frame.World, rand.IntN(5)+1); err == nil {
			s.spawned++
		}
	}
}
