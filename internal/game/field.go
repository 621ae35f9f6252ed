package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Generate places mineCount mines on a size×size grid by rejection sampling and
// returns the resulting Field. Neighbour counts are bumped as each mine lands.
func Generate(size, mineCount int, rng *rand.Rand) (Field, error) {
	if size <= 0 || mineCount < 0 || mineCount >= size*size {
		return nil, fmt.Errorf("%w: %d mines on a %dx%d grid", ErrInvalidMineCount, mineCount, size, size)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	field := make(Field, size*size)
	for placed := 0; placed < mineCount; {
		row := rng.Intn(size)
		col := rng.Intn(size)
		idx := row*size + col
		if field[idx] == Mine {
			continue
		}
		field[idx] = Mine
		placed++

		neighbours(row, col, size, func(r, c int) {
			if field[r*size+c] != Mine {
				field[r*size+c]++
			}
		})
	}
	return field, nil
}

// Count returns the number of mines in the field.
func (f Field) Count() int {
	n := 0
	for _, v := range f {
		if v == Mine {
			n++
		}
	}
	return n
}
