package ecs

import "time"

// UpdateFrame is handed to every Updater during the dispatch phase. The World
// it carries may be used to read and mutate entities for the duration of the
// Update call only.
type UpdateFrame struct {
	DeltaTime time.Duration
	Frame     uint64
	World     *World

	defers []func()
}

func newUpdateFrame(dt time.Duration, frame uint64, world *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Frame:     frame,
		World:     world,
	}
}

// Seconds returns the frame's delta time in seconds.
func (f *UpdateFrame) Seconds() float64 {
	return f.DeltaTime.Seconds()
}

// Defer queues fn to run after the frame's destroy phase.
func (f *UpdateFrame) Defer(fn func()) {
	f.defers = append(f.defers, fn)
}

func (f *UpdateFrame) runDeferred() {
	for i := 0; i < len(f.defers); i++ {
		f.defers[i]()
	}
	f.defers = f.defers[:0]
}
