package dice

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zephyrtronium/dice/internal/random"
)

// DefaultSides is the number of sides of a die when none is given.
const DefaultSides = 20

// ErrInvalidSides indicates a die with fewer than one side.
var ErrInvalidSides = errors.New("die must have at least one side")

// Die rolls uniformly distributed integers in [1, Sides()]. A Die is not safe
// for concurrent use because its random source is not.
type Die struct {
	sides int
	rng   *rand.Rand
}

// NewDie creates a die with the given number of sides drawing from rng. If rng
// is nil, the die uses its own source seeded from crypto/rand.
func NewDie(rng *rand.Rand, sides int) (*Die, error) {
	if sides < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSides, sides)
	}
	if rng == nil {
		rng = random.New()
	}
	return &Die{sides: sides, rng: rng}, nil
}

// Roll returns a random value between 1 and the number of sides, inclusive.
func (d *Die) Roll() int {
	return d.rng.Intn(d.sides) + 1
}

// Sides returns the number of sides on the die.
func (d *Die) Sides() int {
	return d.sides
}
