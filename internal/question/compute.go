package question

import (
	"math"

	"github.com/abhisek/chartiz/internal/grid"
)

// operands are the bound labels an answer handler reads.
type operands struct {
	category  string
	categoryA string
	categoryB string
	point     string
}

type answerFunc func(g *grid.Grid, cfg Config, op operands) Answer

var handlers = map[Kind]answerFunc{
	KindDifference: func(g *grid.Grid, _ Config, op operands) Answer {
		return NumberAnswer(g.Value(op.categoryA, op.point) - g.Value(op.categoryB, op.point))
	},
	KindSum: func(g *grid.Grid, _ Config, op operands) Answer {
		return NumberAnswer(g.Value(op.categoryA, op.point) + g.Value(op.categoryB, op.point))
	},
	KindProjectedIncrease: func(g *grid.Grid, cfg Config, op operands) Answer {
		return NumberAnswer(scaled(g.Value(op.category, op.point), cfg.ProjectedIncrease))
	},
	KindPercentDecrease: func(g *grid.Grid, cfg Config, op operands) Answer {
		return NumberAnswer(scaled(g.Value(op.category, op.point), cfg.PercentDecrease))
	},
	KindPercentReduction: func(g *grid.Grid, cfg Config, op operands) Answer {
		return NumberAnswer(scaled(g.Value(op.category, op.point), cfg.PercentReduction))
	},
	KindPercentageOfTotal: func(g *grid.Grid, _ Config, op operands) Answer {
		total := g.PointTotal(op.point)
		if total == 0 {
			return PercentAnswer(0)
		}
		share := float64(g.Value(op.category, op.point)) / float64(total) * 100
		return PercentAnswer(int(math.Round(share)))
	},
	KindTotalOverPoints: func(g *grid.Grid, _ Config, op operands) Answer {
		return NumberAnswer(totalOverPoints(g, op.category))
	},
	KindAverageOverPoints: func(g *grid.Grid, _ Config, op operands) Answer {
		avg := float64(totalOverPoints(g, op.category)) / float64(len(g.Points()))
		return NumberAnswer(int(math.Round(avg)))
	},
	KindBestPerformer: func(g *grid.Grid, _ Config, _ operands) Answer {
		return LabelAnswer(g.RankedCategories(true)[0])
	},
	KindWorstPerformer: func(g *grid.Grid, _ Config, _ operands) Answer {
		return LabelAnswer(g.RankedCategories(false)[0])
	},
}

// Compute evaluates the answer for kind using the bound variables and the
// grid's current values. Unsupported kinds yield an unsupported answer.
func Compute(g *grid.Grid, cfg Config, kind Kind, b Bindings) Answer {
	h, ok := handlers[kind]
	if !ok {
		return Answer{Kind: AnswerUnsupported}
	}
	return h(g, cfg, operands{
		category:  b[cfg.CategoryPrefix],
		categoryA: b[cfg.firstCategoryVar()],
		categoryB: b[cfg.secondCategoryVar()],
		point:     b[cfg.PointPrefix],
	})
}

// scaled multiplies v by factor and rounds half away from zero.
func scaled(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}

func totalOverPoints(g *grid.Grid, category string) int {
	total := 0
	for _, p := range g.Points() {
		total += g.Value(category, p)
	}
	return total
}
