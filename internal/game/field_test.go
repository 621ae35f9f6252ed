package game

import (
	"errors"
	"math/rand"
	"testing"
)

// countAround recomputes a cell's neighbour count from scratch.
func countAround(f Field, size, idx int) int {
	n := 0
	row, col := idx/size, idx%size
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if r >= 0 && r < size && c >= 0 && c < size && f[r*size+c] == Mine {
				n++
			}
		}
	}
	return n
}

func TestGenerateCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 300; trial++ {
		size := 1 + rng.Intn(12)
		mines := rng.Intn(size * size)

		f, err := Generate(size, mines, rand.New(rand.NewSource(int64(trial))))
		if err != nil {
			t.Fatalf("Generate(%d, %d): %v", size, mines, err)
		}
		if len(f) != size*size {
			t.Fatalf("len = %d, want %d", len(f), size*size)
		}
		if got := f.Count(); got != mines {
			t.Fatalf("mines = %d, want %d", got, mines)
		}
		for i, v := range f {
			if v == Mine {
				continue
			}
			if want := countAround(f, size, i); v != want {
				t.Fatalf("size=%d mines=%d cell %d = %d, want %d", size, mines, i, v, want)
			}
		}
	}
}

func TestGenerateRejectsImpossibleCounts(t *testing.T) {
	cases := []struct{ size, mines int }{
		{10, 100},
		{10, 150},
		{10, -1},
		{0, 0},
	}
	for _, tc := range cases {
		if _, err := Generate(tc.size, tc.mines, nil); !errors.Is(err, ErrInvalidMineCount) {
			t.Errorf("Generate(%d, %d) err = %v, want ErrInvalidMineCount", tc.size, tc.mines, err)
		}
	}
}

func TestGenerateNearlyFull(t *testing.T) {
	f, err := Generate(3, 8, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range f {
		if v != Mine && v != countAround(f, 3, i) {
			t.Fatalf("cell %d = %d", i, v)
		}
	}
	if f.Count() != 8 {
		t.Fatalf("mines = %d", f.Count())
	}
}
