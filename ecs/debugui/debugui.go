// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Render functions are attached to entities as ImguiItem components and run by
// ImguiSystem once the frame's systems are done.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem to the end of
// the frame and records ImGui's input capture state.
type ImguiSystem struct {
	items ecs.ComponentType[ImguiItem]
	state ImguiInputState
}

// NewImguiSystem registers ImguiItem if needed and returns the system.
func NewImguiSystem(registry *ecs.ComponentRegistry) *ImguiSystem {
	return &ImguiSystem{items: ecs.RegisterComponent[ImguiItem](registry)}
}

func (i *ImguiSystem) Requires() []ecs.Kind {
	return []ecs.Kind{i.items.Kind()}
}

// Update updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	io := imgui.CurrentIO()
	i.state.WantCaptureMouse = io.WantCaptureMouse()
	i.state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for e := range entities.All() {
		if item, ok := i.items.Get(frame.World, e); ok && item.Render != nil {
			frame.Defer(item.Render)
		}
	}
}

// InputState returns the capture state seen by the last Update.
func (i *ImguiSystem) InputState() ImguiInputState {
	return i.state
}
