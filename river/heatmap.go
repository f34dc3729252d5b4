package river

import (
	"github.com/zeu5/river-crossing-rl/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// QTableHeatMap lays the action values out as a grid with one column per
// action and one row per state recorded in the table
type QTableHeatMap struct {
	table  *types.QTable
	states []State
}

var _ plotter.GridXYZ = &QTableHeatMap{}

func NewQTableHeatMap(table *types.QTable) *QTableHeatMap {
	states := make([]State, 0)
	for _, s := range AllStates() {
		if table.HasState(s.Hash()) {
			states = append(states, s)
		}
	}
	return &QTableHeatMap{
		table:  table,
		states: states,
	}
}

// States in row order
func (h *QTableHeatMap) States() []State {
	return h.states
}

func (h *QTableHeatMap) Dims() (int, int) {
	return NumActions, len(h.states)
}

func (h *QTableHeatMap) Z(c, r int) float64 {
	return h.table.Get(h.states[r].Hash(), c)
}

func (h *QTableHeatMap) X(c int) float64 {
	return float64(c)
}

func (h *QTableHeatMap) Y(r int) float64 {
	return float64(r)
}

// SaveHeatMap plots the table as a heat map, nothing is written when the
// table is empty
func SaveHeatMap(table *types.QTable, file string) error {
	h := NewQTableHeatMap(table)
	if len(h.states) == 0 {
		return nil
	}
	p := plot.New()
	p.Title.Text = "Action values"
	p.X.Label.Text = "Action"
	p.Y.Label.Text = "State"
	hm := plotter.NewHeatMap(h, palette.Heat(20, 1))
	if hm.Max <= hm.Min {
		// a flat table still needs a non empty color range
		hm.Max = hm.Min + 1
	}
	p.Add(hm)
	return p.Save(8*vg.Inch, 8*vg.Inch, file)
}
