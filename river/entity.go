package river

import (
	"fmt"
	"strings"
)

// Entity is one of the four tokens that cross the river
type Entity int

const (
	Wolf Entity = iota
	Goat
	Cabbage
	// the player, always travelling with the boat
	Boat
)

// NumEntities is the size of the entity set
const NumEntities = 4

var entityNames = [NumEntities]string{"Wolf", "Goat", "Cabbage", "Boat"}

func (e Entity) String() string {
	if e < 0 || int(e) >= NumEntities {
		return fmt.Sprintf("Entity(%d)", int(e))
	}
	return entityNames[e]
}

func (e Entity) valid() bool {
	return e >= 0 && int(e) < NumEntities
}

// Entities lists every entity
func Entities() []Entity {
	return []Entity{Wolf, Goat, Cabbage, Boat}
}

// ParseEntity resolves a case insensitive entity name
func ParseEntity(name string) (Entity, error) {
	for i, n := range entityNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Entity(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown entity %q", ErrInvalidPartition, name)
}

// Location is one of the three places an entity can be in
type Location int

const (
	LeftBank Location = iota
	Transport
	RightBank
)

// NumLocations is the number of locations
const NumLocations = 3

var locationNames = [NumLocations]string{"Left", "Boat", "Right"}

func (l Location) String() string {
	if l < 0 || int(l) >= NumLocations {
		return fmt.Sprintf("Location(%d)", int(l))
	}
	return locationNames[l]
}

// Locations lists every location from left to right
func Locations() []Location {
	return []Location{LeftBank, Transport, RightBank}
}
