package question

import (
	"strconv"
)

// Kind identifies how a question's answer is computed from the grid.
type Kind string

const (
	KindDifference        Kind = "difference"
	KindSum               Kind = "sum"
	KindProjectedIncrease Kind = "projectedIncrease"
	KindPercentDecrease   Kind = "percentDecrease"
	KindPercentReduction  Kind = "percentReduction"
	KindPercentageOfTotal Kind = "percentageOfTotal"
	KindTotalOverPoints   Kind = "totalOverPoints"
	KindAverageOverPoints Kind = "averageOverPoints"
	KindBestPerformer     Kind = "bestPerformer"
	KindWorstPerformer    Kind = "worstPerformer"

	// KindUnsupported marks a template whose type is not recognized.
	KindUnsupported Kind = "unsupported"
)

// AllKinds lists every supported kind in declaration order.
var AllKinds = []Kind{
	KindDifference,
	KindSum,
	KindProjectedIncrease,
	KindPercentDecrease,
	KindPercentReduction,
	KindPercentageOfTotal,
	KindTotalOverPoints,
	KindAverageOverPoints,
	KindBestPerformer,
	KindWorstPerformer,
}

// legacyKinds maps spellings found in older template files.
var legacyKinds = map[string]Kind{
	"totalOvernumbers":   KindTotalOverPoints,
	"averageOvernumbers": KindAverageOverPoints,
}

// ParseKind maps a template type string to a Kind. Unknown strings map to
// KindUnsupported.
func ParseKind(s string) Kind {
	for _, k := range AllKinds {
		if string(k) == s {
			return k
		}
	}
	if k, ok := legacyKinds[s]; ok {
		return k
	}
	return KindUnsupported
}

// Supported reports whether k has an answer handler.
func (k Kind) Supported() bool {
	return ParseKind(string(k)) != KindUnsupported
}

// Template is a parametrized question loaded from the template source.
type Template struct {
	// Type is the raw kind string as it appears in the source.
	Type string `json:"type"`

	// Template is the question text with {name} placeholders.
	Template string `json:"template"`

	// Variables lists the placeholder names to bind, in order.
	Variables []string `json:"variables"`
}

// Kind returns the parsed kind of the template.
func (t Template) Kind() Kind {
	return ParseKind(t.Type)
}

// AnswerKind describes the shape of a computed answer.
type AnswerKind int

const (
	AnswerUnsupported AnswerKind = iota // no answer could be computed
	AnswerNumber                        // integer, e.g. 200
	AnswerPercent                       // percentage string, e.g. "30%"
	AnswerLabel                         // category label, e.g. "C"
)

// Answer is the expected answer of a question instance.
type Answer struct {
	Kind AnswerKind

	// Number holds the value for AnswerNumber and AnswerPercent.
	Number int

	// Label holds the value for AnswerLabel.
	Label string
}

// NumberAnswer returns a numeric answer.
func NumberAnswer(n int) Answer { return Answer{Kind: AnswerNumber, Number: n} }

// PercentAnswer returns a percentage answer.
func PercentAnswer(n int) Answer { return Answer{Kind: AnswerPercent, Number: n} }

// LabelAnswer returns a category label answer.
func LabelAnswer(label string) Answer { return Answer{Kind: AnswerLabel, Label: label} }

// Valid reports whether the answer can be checked.
func (a Answer) Valid() bool {
	return a.Kind != AnswerUnsupported
}

// IsPercent reports whether the answer is a percentage string.
func (a Answer) IsPercent() bool {
	return a.Kind == AnswerPercent
}

// String returns the display form: "200", "30%", "C", or "" when unsupported.
func (a Answer) String() string {
	switch a.Kind {
	case AnswerNumber:
		return strconv.Itoa(a.Number)
	case AnswerPercent:
		return strconv.Itoa(a.Number) + "%"
	case AnswerLabel:
		return a.Label
	default:
		return ""
	}
}

// Instance is a generated question ready for display.
type Instance struct {
	// Text is the template with every placeholder substituted.
	Text string

	// Answer is the expected answer computed from the grid.
	Answer Answer

	// Kind is the kind of the source template.
	Kind Kind

	// Bindings holds the value bound to each variable.
	Bindings Bindings
}

// Answerable reports whether the instance has a checkable answer.
func (q *Instance) Answerable() bool {
	return q != nil && q.Answer.Valid()
}
