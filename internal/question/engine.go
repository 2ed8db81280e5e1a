package question

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/chartiz/internal/grid"
)

// ErrNoTemplates is returned by Generate when no templates are loaded.
var ErrNoTemplates = errors.New("no question templates loaded")

// Bindings maps variable names to the labels bound to them.
type Bindings map[string]string

// Engine generates question instances from templates and the current grid.
// It keeps no per-question state; the caller owns the current instance.
type Engine struct {
	grid      *grid.Grid
	rng       *rand.Rand
	cfg       Config
	templates []Template
}

// NewEngine creates an Engine reading values from g. The template set starts
// empty; call SetTemplates once they are loaded.
func NewEngine(g *grid.Grid, rng *rand.Rand, cfg Config) *Engine {
	return &Engine{grid: g, rng: rng, cfg: cfg}
}

// SetTemplates replaces the template set.
func (e *Engine) SetTemplates(templates []Template) {
	e.templates = slices.Clone(templates)
}

// TemplateCount returns the number of loaded templates.
func (e *Engine) TemplateCount() int {
	return len(e.templates)
}

// Generate picks a random template, binds its variables, computes the answer
// and renders the text. Returns ErrNoTemplates if the set is empty.
//
// A template with an unrecognized type still yields an instance, but its
// answer is unsupported and the instance is not answerable.
func (e *Engine) Generate() (*Instance, error) {
	if len(e.templates) == 0 {
		return nil, ErrNoTemplates
	}

	tmpl := e.templates[e.rng.IntN(len(e.templates))]
	bindings := e.Bind(tmpl.Variables)
	kind := tmpl.Kind()

	return &Instance{
		Text:     Render(tmpl.Template, bindings),
		Answer:   Compute(e.grid, e.cfg, kind, bindings),
		Kind:     kind,
		Bindings: bindings,
	}, nil
}

// Bind assigns a random label to every category or point variable.
// If the first and second category variables collide, the second is moved
// to the first category label that differs from the first.
func (e *Engine) Bind(names []string) Bindings {
	categories := e.grid.Categories()
	points := e.grid.Points()

	b := make(Bindings, len(names))
	for _, name := range names {
		switch {
		case strings.HasPrefix(name, e.cfg.CategoryPrefix):
			b[name] = categories[e.rng.IntN(len(categories))]
		case strings.HasPrefix(name, e.cfg.PointPrefix):
			b[name] = points[e.rng.IntN(len(points))]
		}
	}

	first, second := e.cfg.firstCategoryVar(), e.cfg.secondCategoryVar()
	if a, ok := b[first]; ok && a != "" && a == b[second] {
		for _, c := range categories {
			if c != a {
				b[second] = c
				break
			}
		}
	}
	return b
}

// Render replaces every {name} in text with its bound value.
// Placeholders without a binding are left as-is.
func Render(text string, b Bindings) string {
	if len(b) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(b))
	for name, value := range b {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
