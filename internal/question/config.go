package question

// Config controls variable binding and answer multipliers.
type Config struct {
	// CategoryPrefix marks variables bound to a category label.
	// "letter", "letterA" and "letterB" all bind categories.
	CategoryPrefix string

	// PointPrefix marks variables bound to a point label.
	PointPrefix string

	// ProjectedIncrease is the multiplier for projectedIncrease questions.
	ProjectedIncrease float64

	// PercentDecrease is the multiplier for percentDecrease questions.
	PercentDecrease float64

	// PercentReduction is the multiplier for percentReduction questions.
	PercentReduction float64
}

// DefaultConfig returns the prefixes and multipliers used by the stock
// template set.
func DefaultConfig() Config {
	return Config{
		CategoryPrefix:    "letter",
		PointPrefix:       "number",
		ProjectedIncrease: 1.2,
		PercentDecrease:   0.7,
		PercentReduction:  0.6,
	}
}

// firstCategoryVar is the variable checked for collisions with secondCategoryVar.
func (c Config) firstCategoryVar() string { return c.CategoryPrefix + "A" }

func (c Config) secondCategoryVar() string { return c.CategoryPrefix + "B" }
