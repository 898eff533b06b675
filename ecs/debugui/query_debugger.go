package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickecs/ecs"
)

// QueryResult is what a component mask currently matches.
type QueryResult struct {
	Entities int
	Systems  []string
}

type QueryDebugger struct {
	selected ecs.Mask
}

func NewQueryDebugger() QueryDebugger {
	return QueryDebugger{}
}

// Toggle adds or removes kind from the query mask.
func (qd *QueryDebugger) Toggle(kind ecs.Kind, on bool) {
	if on {
		qd.selected = qd.selected.With(kind)
	} else {
		qd.selected = qd.selected.Without(kind)
	}
}

func (qd *QueryDebugger) Mask() ecs.Mask {
	return qd.selected
}

// Evaluate counts the live entities carrying every selected kind and lists
// the systems whose requirements include all of them.
func (qd *QueryDebugger) Evaluate(world *ecs.World) QueryResult {
	var result QueryResult
	for e := range world.Entities() {
		if mask, ok := world.Mask(e); ok && mask.Contains(qd.selected) {
			result.Entities++
		}
	}
	for _, info := range world.Systems() {
		if info.Required.Contains(qd.selected) {
			result.Systems = append(result.Systems, info.Name)
		}
	}
	return result
}

func (qd *QueryDebugger) Render(world *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selected = 0
	}

	registry := world.Registry()
	for i := 0; i < registry.Len(); i++ {
		kind := ecs.Kind(i)
		selected := qd.selected.Has(kind)
		if imgui.Checkbox(registry.Name(kind), &selected) {
			qd.Toggle(kind, selected)
		}
	}

	imgui.Separator()

	if qd.selected == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	result := qd.Evaluate(world)
	imgui.Text("Query: " + strings.Join(registry.Names(qd.selected), ", "))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", result.Entities))

	if imgui.TreeNodeStr(fmt.Sprintf("Systems (%d)", len(result.Systems))) {
		for _, name := range result.Systems {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}
