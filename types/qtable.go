package types

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// QTable is a sparse action value table keyed by state hash and action
// index. Pairs that were never Set read as zero. Entries are only ever
// added or overwritten, never removed.
type QTable struct {
	table   map[string]map[int]float64
	actions int
}

// QEntry is a single recorded (state, action) value
type QEntry struct {
	State  string  `json:"state"`
	Action int     `json:"action"`
	Value  float64 `json:"value"`
}

func NewQTable(actions int) *QTable {
	return &QTable{
		table:   make(map[string]map[int]float64),
		actions: actions,
	}
}

// Actions is the size of the action space the table ranges over
func (q *QTable) Actions() int {
	return q.actions
}

// Get returns the value of (state, action), zero if it was never set.
// Reading does not add entries to the table.
func (q *QTable) Get(state string, action int) float64 {
	vals, ok := q.table[state]
	if !ok {
		return 0
	}
	return vals[action]
}

// Lookup is Get that also reports whether the pair was recorded
func (q *QTable) Lookup(state string, action int) (float64, bool) {
	vals, ok := q.table[state]
	if !ok {
		return 0, false
	}
	val, ok := vals[action]
	return val, ok
}

func (q *QTable) Set(state string, action int, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[int]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

// Len is the number of recorded (state, action) pairs
func (q *QTable) Len() int {
	count := 0
	for _, vals := range q.table {
		count += len(vals)
	}
	return count
}

// States returns the recorded state hashes in sorted order
func (q *QTable) States() []string {
	states := maps.Keys(q.table)
	slices.Sort(states)
	return states
}

// ArgMax returns the action with the highest value for the state.
// Unrecorded actions count as zero and ties go to the lowest index.
func (q *QTable) ArgMax(state string) (int, float64) {
	vals := q.table[state]
	maxAction := 0
	maxVal := vals[0]
	for a := 1; a < q.actions; a++ {
		if v := vals[a]; v > maxVal {
			maxAction = a
			maxVal = v
		}
	}
	return maxAction, maxVal
}

// Max is the value of the greedy action in the state
func (q *QTable) Max(state string) float64 {
	_, val := q.ArgMax(state)
	return val
}

// Entries lists every recorded pair ordered by state then action
func (q *QTable) Entries() []QEntry {
	entries := make([]QEntry, 0, q.Len())
	for _, state := range q.States() {
		actions := maps.Keys(q.table[state])
		slices.Sort(actions)
		for _, a := range actions {
			entries = append(entries, QEntry{State: state, Action: a, Value: q.table[state][a]})
		}
	}
	return entries
}
