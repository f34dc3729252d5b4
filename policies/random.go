package policies

import (
	"time"

	"github.com/zeu5/river-crossing-rl/types"
	"golang.org/x/exp/rand"
)

// UniformRandom ignores the state and picks any action with equal
// probability
type UniformRandom struct {
	actions int
	rand    *rand.Rand
}

var _ types.Policy = &UniformRandom{}

// NewUniformRandom seeds the policy with seed, 0 uses the current time
func NewUniformRandom(actions int, seed uint64) *UniformRandom {
	return &UniformRandom{
		actions: actions,
		rand:    rand.New(rand.NewSource(seedOrNow(seed))),
	}
}

func (u *UniformRandom) NextAction(_ types.State) int {
	return u.rand.Intn(u.actions)
}

func seedOrNow(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}
