package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickecs/ecs"
)

type SystemViewer struct {
	sortColumn    int
	sortAscending bool
	selected      string
}

func NewSystemViewer() SystemViewer {
	return SystemViewer{sortAscending: true}
}

// sortSystems orders infos by the given column. Column 0 keeps registration
// order, which is also dispatch order.
func sortSystems(infos []ecs.SystemInfo, column int, ascending bool) {
	if column == 0 {
		if !ascending {
			slices.Reverse(infos)
		}
		return
	}
	sort.SliceStable(infos, func(i, j int) bool {
		a, b := infos[i], infos[j]
		if !ascending {
			a, b = b, a
		}
		var less bool

		switch column {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.Required.Len() < b.Required.Len()
		case 3:
			less = a.MatchedCount < b.MatchedCount
		case 4:
			less = a.Stats.AvgDuration < b.Stats.AvgDuration
		case 5:
			less = a.Stats.LastDuration < b.Stats.LastDuration
		}

		return less
	})
}

// Render draws the registered systems. Clicking a row reports that system's
// requirement mask so the entity browser can filter on it.
func (sv *SystemViewer) Render(world *ecs.World) (ecs.Mask, bool) {
	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return 0, false
	}

	infos := world.Systems()
	var (
		picked ecs.Mask
		ok     bool
	)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("SystemTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Requires")
		imgui.TableSetupColumn("Matched")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Last")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		sortSystems(infos, sv.sortColumn, sv.sortAscending)

		for i, info := range infos {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d##%s", i, info.Name)
			if imgui.SelectableBoolV(label, sv.selected == info.Name, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sv.selected = info.Name
				picked, ok = info.Required, true
			}

			imgui.TableNextColumn()
			imgui.Text(info.Name)
			imgui.TableNextColumn()
			imgui.Text(strings.Join(info.Requires, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.MatchedCount))
			imgui.TableNextColumn()
			imgui.Text(info.Stats.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(info.Stats.LastDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
	return picked, ok
}
