package river

import (
	"errors"
	"fmt"
)

var ErrActionOutOfRange = errors.New("action out of range")

// NumActions is the size of the fixed action space
const NumActions = 16

// Action moves the boat between a bank and the river, carrying at most one
// piece of cargo. A nil Cargo means the player travels alone.
type Action struct {
	Index int
	Cargo *Entity
	From  Location
	To    Location
}

func cargo(e Entity) *Entity {
	return &e
}

var actions = buildActions()

func buildActions() [NumActions]Action {
	var table [NumActions]Action
	moves := [4][2]Location{
		{LeftBank, Transport},
		{Transport, LeftBank},
		{RightBank, Transport},
		{Transport, RightBank},
	}
	i := 0
	for _, e := range []Entity{Cabbage, Goat, Wolf} {
		for _, m := range moves {
			table[i] = Action{Index: i, Cargo: cargo(e), From: m[0], To: m[1]}
			i++
		}
	}
	alone := [4][2]Location{
		{Transport, LeftBank},
		{Transport, RightBank},
		{LeftBank, Transport},
		{RightBank, Transport},
	}
	for _, m := range alone {
		table[i] = Action{Index: i, From: m[0], To: m[1]}
		i++
	}
	return table
}

// ActionFromIndex returns the action with the given index
func ActionFromIndex(i int) (Action, error) {
	if i < 0 || i >= NumActions {
		return Action{}, fmt.Errorf("%w: %d not in [0, %d)", ErrActionOutOfRange, i, NumActions)
	}
	return actions[i], nil
}

// Actions lists the action space in index order
func Actions() []Action {
	out := make([]Action, NumActions)
	copy(out, actions[:])
	return out
}

// Crossing returns the two actions that take the boat, and the cargo if
// any, from one bank to the other. A nil cargo crosses the player alone.
func Crossing(c *Entity, from, to Location) ([2]Action, error) {
	if from == to || from == Transport || to == Transport {
		return [2]Action{}, fmt.Errorf("crossing must go from one bank to the other, got %s to %s", from, to)
	}
	var out [2]Action
	found := 0
	for _, a := range actions {
		if !sameCargo(a.Cargo, c) {
			continue
		}
		if a.From == from && a.To == Transport {
			out[0] = a
			found++
		}
		if a.From == Transport && a.To == to {
			out[1] = a
			found++
		}
	}
	if found != 2 {
		return [2]Action{}, fmt.Errorf("no crossing for %s from %s to %s", cargoName(c), from, to)
	}
	return out, nil
}

func cargoName(c *Entity) string {
	if c == nil {
		return "player"
	}
	return c.String()
}

func sameCargo(a, b *Entity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Apply returns the state after the action. When the preconditions of the
// action do not hold the state is returned unchanged.
func (a Action) Apply(s State) State {
	if !s.At(Boat, a.From) {
		return s
	}
	if a.Cargo == nil {
		// the player leaves the boat only when nothing else is on board
		if a.From == Transport && !s.Only(Transport, Boat) {
			return s
		}
		return s.Move(Boat, a.From, a.To)
	}
	if !s.At(*a.Cargo, a.From) {
		return s
	}
	return s.Move(Boat, a.From, a.To).Move(*a.Cargo, a.From, a.To)
}

// Hash identifies the action
func (a Action) Hash() string {
	return a.String()
}

func (a Action) String() string {
	if a.Cargo == nil {
		return fmt.Sprintf("MovePlayer%sTo%s", a.From, a.To)
	}
	return fmt.Sprintf("Move%sAndPlayer%sTo%s", *a.Cargo, a.From, a.To)
}
