package debugui

import (
	"fmt"

	"github.com/plus3/tickecs/ecs"
)

// DebugUI is the inspector overlay: an entity browser, a component
// inspector, a system viewer, a query debugger and performance stats.
type DebugUI struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	timer     *FrameTimer

	browser   EntityBrowser
	inspector ComponentInspector
	systems   SystemViewer
	query     QueryDebugger
	perf      PerformanceStats
}

func New(world *ecs.World, scheduler *ecs.Scheduler) *DebugUI {
	return &DebugUI{
		world:     world,
		scheduler: scheduler,
		timer:     NewFrameTimer(),
		browser:   NewEntityBrowser(100),
		inspector: NewComponentInspector(),
		systems:   NewSystemViewer(),
		query:     NewQueryDebugger(),
		perf:      NewPerformanceStats(120),
	}
}

// Render draws every window. It must run between the ImGui backend's
// BeginFrame and EndFrame.
func (d *DebugUI) Render() {
	d.browser.Render(d.world)
	d.inspector.Render(d.world, d.browser.GetSelectedEntity())
	if mask, ok := d.systems.Render(d.world); ok {
		d.browser.FilterMask(mask)
	}
	d.query.Render(d.world)
	d.perf.Render(d.world, d.scheduler, d.timer.GetDeltaTime())
}

// SpawnDebugUI registers an ImguiSystem with the world and spawns the
// inspector overlay as an ImguiItem.
func SpawnDebugUI(world *ecs.World, scheduler *ecs.Scheduler) (*ImguiSystem, error) {
	sys := NewImguiSystem(world.Registry())
	if err := world.Register(sys); err != nil {
		return nil, fmt.Errorf("spawn debug ui: %w", err)
	}
	if _, err := world.Spawn(ImguiItem{Render: New(world, scheduler).Render}); err != nil {
		return nil, fmt.Errorf("spawn debug ui: %w", err)
	}
	return sys, nil
}

// RegisterDebugUIComponents registers the components the debug UI spawns.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
