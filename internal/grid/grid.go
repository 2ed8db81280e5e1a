package grid

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// Config describes the fixed shape of a grid.
type Config struct {
	// Categories are the series labels, in display order.
	Categories []string

	// Points are the x-axis labels shared by every series.
	Points []string

	// Step is the spacing between allowed values.
	Step int

	// Max is the largest allowed value. Must be a multiple of Step.
	Max int
}

// DefaultConfig returns the five-series, four-point chart.
func DefaultConfig() Config {
	return Config{
		Categories: []string{"A", "B", "C", "D", "E"},
		Points:     []string{"1", "2", "3", "4"},
		Step:       100,
		Max:        1000,
	}
}

// Buckets returns the number of distinct values a cell can take.
func (c Config) Buckets() int {
	return c.Max/c.Step + 1
}

// Validate checks the label sets and the value lattice.
func (c Config) Validate() error {
	if len(c.Categories) == 0 {
		return errors.New("at least one category is required")
	}
	if len(c.Points) == 0 {
		return errors.New("at least one point is required")
	}
	if err := uniqueLabels("category", c.Categories); err != nil {
		return err
	}
	if err := uniqueLabels("point", c.Points); err != nil {
		return err
	}
	if c.Step <= 0 {
		return fmt.Errorf("step must be positive, got %d", c.Step)
	}
	if c.Max < 0 || c.Max%c.Step != 0 {
		return fmt.Errorf("max %d is not a non-negative multiple of step %d", c.Max, c.Step)
	}
	return nil
}

func uniqueLabels(kind string, labels []string) error {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if l == "" {
			return fmt.Errorf("empty %s label", kind)
		}
		if seen[l] {
			return fmt.Errorf("duplicate %s label %q", kind, l)
		}
		seen[l] = true
	}
	return nil
}

// Series is one category's values, aligned with the grid's points.
type Series struct {
	Label  string
	Values []int
}

// Total returns the sum of the series values.
func (s Series) Total() int {
	total := 0
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Grid holds the current values of every series.
type Grid struct {
	cfg        Config
	series     []Series
	catIndex   map[string]int
	pointIndex map[string]int
}

// New creates a grid with every value set to zero.
func New(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid config: %w", err)
	}

	cfg.Categories = slices.Clone(cfg.Categories)
	cfg.Points = slices.Clone(cfg.Points)

	g := &Grid{
		cfg:        cfg,
		series:     make([]Series, len(cfg.Categories)),
		catIndex:   make(map[string]int, len(cfg.Categories)),
		pointIndex: make(map[string]int, len(cfg.Points)),
	}
	for i, c := range cfg.Categories {
		g.series[i] = Series{Label: c, Values: make([]int, len(cfg.Points))}
		g.catIndex[c] = i
	}
	for i, p := range cfg.Points {
		g.pointIndex[p] = i
	}
	return g, nil
}

// Config returns the grid's configuration.
func (g *Grid) Config() Config {
	return g.cfg
}

// Categories returns the category labels in insertion order.
func (g *Grid) Categories() []string {
	return slices.Clone(g.cfg.Categories)
}

// Points returns the point labels in axis order.
func (g *Grid) Points() []string {
	return slices.Clone(g.cfg.Points)
}

// Series returns a copy of every series.
func (g *Grid) Series() []Series {
	out := make([]Series, len(g.series))
	for i, s := range g.series {
		out[i] = Series{Label: s.Label, Values: slices.Clone(s.Values)}
	}
	return out
}

// Value returns the value of category at point, or 0 if either is unknown.
func (g *Grid) Value(category, point string) int {
	ci, ok := g.catIndex[category]
	if !ok {
		return 0
	}
	pi, ok := g.pointIndex[point]
	if !ok {
		return 0
	}
	return g.series[ci].Values[pi]
}

// Randomize redraws every value of every series.
func (g *Grid) Randomize(rng *rand.Rand) {
	for i := range g.series {
		g.series[i].Values = g.randomValues(rng)
	}
}

func (g *Grid) randomValues(rng *rand.Rand) []int {
	buckets := g.cfg.Buckets()
	values := make([]int, len(g.cfg.Points))
	for i := range values {
		values[i] = rng.IntN(buckets) * g.cfg.Step
	}
	return values
}

// SetValues replaces the whole series for category.
func (g *Grid) SetValues(category string, values []int) error {
	ci, ok := g.catIndex[category]
	if !ok {
		return fmt.Errorf("unknown category %q", category)
	}
	if len(values) != len(g.cfg.Points) {
		return fmt.Errorf("category %q: got %d values, want %d", category, len(values), len(g.cfg.Points))
	}
	for i, v := range values {
		if v < 0 || v > g.cfg.Max || v%g.cfg.Step != 0 {
			return fmt.Errorf("category %q point %q: value %d outside {0, %d, ..., %d}",
				category, g.cfg.Points[i], v, g.cfg.Step, g.cfg.Max)
		}
	}
	g.series[ci].Values = slices.Clone(values)
	return nil
}

// SeriesTotal returns the sum of category's values across all points.
func (g *Grid) SeriesTotal(category string) int {
	ci, ok := g.catIndex[category]
	if !ok {
		return 0
	}
	return g.series[ci].Total()
}

// PointTotal returns the sum of every category's value at point.
func (g *Grid) PointTotal(point string) int {
	total := 0
	for _, c := range g.cfg.Categories {
		total += g.Value(c, point)
	}
	return total
}

// RankedCategories orders the categories by series total. Ties keep
// insertion order.
func (g *Grid) RankedCategories(descending bool) []string {
	ranked := g.Categories()
	slices.SortStableFunc(ranked, func(a, b string) int {
		ta, tb := g.SeriesTotal(a), g.SeriesTotal(b)
		if descending {
			return tb - ta
		}
		return ta - tb
	})
	return ranked
}
