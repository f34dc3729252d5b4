package river

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zeu5/river-crossing-rl/types"
	"golang.org/x/exp/slices"
)

var ErrInvalidPartition = errors.New("entities do not form a partition")

// State assigns every entity to exactly one location. The zero value has
// every entity on the left bank. States are values; transitions return new
// states and never modify the receiver.
type State struct {
	loc [NumEntities]Location
}

var _ types.State = State{}

// NewState builds a state from the sets of entities at each location. The
// order of the entities within a set does not matter, but together the
// sets must contain every entity exactly once.
func NewState(left, transport, right []Entity) (State, error) {
	var s State
	var seen [NumEntities]bool
	for l, set := range [NumLocations][]Entity{left, transport, right} {
		for _, e := range set {
			if !e.valid() {
				return State{}, fmt.Errorf("%w: unknown entity %d", ErrInvalidPartition, int(e))
			}
			if seen[e] {
				return State{}, fmt.Errorf("%w: %s appears more than once", ErrInvalidPartition, e)
			}
			seen[e] = true
			s.loc[e] = Location(l)
		}
	}
	for e, ok := range seen {
		if !ok {
			return State{}, fmt.Errorf("%w: %s is missing", ErrInvalidPartition, Entity(e))
		}
	}
	return s, nil
}

// MustState is NewState that panics on a malformed partition
func MustState(left, transport, right []Entity) State {
	s, err := NewState(left, transport, right)
	if err != nil {
		panic(err)
	}
	return s
}

// InitialState has everything on the left bank
func InitialState() State {
	return uniformState(LeftBank)
}

// GoalState has everything on the right bank
func GoalState() State {
	return uniformState(RightBank)
}

func uniformState(l Location) State {
	var s State
	for e := range s.loc {
		s.loc[e] = l
	}
	return s
}

// AllStates enumerates every assignment of entities to locations
func AllStates() []State {
	total := 1
	for i := 0; i < NumEntities; i++ {
		total *= NumLocations
	}
	states := make([]State, total)
	for i := 0; i < total; i++ {
		n := i
		for e := 0; e < NumEntities; e++ {
			states[i].loc[e] = Location(n % NumLocations)
			n /= NumLocations
		}
	}
	return states
}

// Location of the entity
func (s State) Location(e Entity) Location {
	return s.loc[e]
}

// At reports whether the entity is at the location
func (s State) At(e Entity, l Location) bool {
	return s.loc[e] == l
}

// Set returns the entities at the location sorted by name
func (s State) Set(l Location) []Entity {
	set := make([]Entity, 0, NumEntities)
	for e, el := range s.loc {
		if el == l {
			set = append(set, Entity(e))
		}
	}
	slices.SortFunc(set, func(a, b Entity) int {
		return strings.Compare(a.String(), b.String())
	})
	return set
}

// Only reports whether the location holds exactly the given entities
func (s State) Only(l Location, entities ...Entity) bool {
	count := 0
	for _, el := range s.loc {
		if el == l {
			count++
		}
	}
	if count != len(entities) {
		return false
	}
	for _, e := range entities {
		if s.loc[e] != l {
			return false
		}
	}
	return true
}

// Move relocates the entity to `to`. Callers check that the entity is at
// `from`.
func (s State) Move(e Entity, from, to Location) State {
	next := s
	next.loc[e] = to
	return next
}

// Tuple is the canonical hashable form of a state: the sorted entity
// names of each location
type Tuple [NumLocations]string

func (t Tuple) String() string {
	return "(" + t[LeftBank] + " | " + t[Transport] + " | " + t[RightBank] + ")"
}

// StateToTuple canonicalises the state
func StateToTuple(s State) Tuple {
	var t Tuple
	for _, l := range Locations() {
		set := s.Set(l)
		names := make([]string, len(set))
		for i, e := range set {
			names[i] = e.String()
		}
		t[l] = strings.Join(names, ",")
	}
	return t
}

func (s State) Tuple() Tuple {
	return StateToTuple(s)
}

// Hash is the string form of the canonical tuple, used as the table key
func (s State) Hash() string {
	return StateToTuple(s).String()
}

func (s State) String() string {
	return s.Hash()
}
