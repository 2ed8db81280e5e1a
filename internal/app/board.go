package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/chartiz/internal/grid"
	"github.com/abhisek/chartiz/internal/question"
)

// Board is a grid with the question engine reading it.
type Board struct {
	Grid   *grid.Grid
	Engine *question.Engine
}

// NewBoard builds a randomized grid with the default layout and an engine
// over it. Templates still have to be set on the engine.
func NewBoard(rng *rand.Rand) (*Board, error) {
	g, err := grid.New(grid.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("create grid: %w", err)
	}
	g.Randomize(rng)
	return &Board{
		Grid:   g,
		Engine: question.NewEngine(g, rng, question.DefaultConfig()),
	}, nil
}

// NewRand returns a generator seeded with seed, or with the current time
// when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
