package xpath

import (
	"strconv"
	"strings"

	"github.com/jacoelho/docpath/convert"
)

// Axis selects the relation a step follows from its context node.
type Axis uint8

const (
	AxisChild Axis = iota
	AxisAttribute
	AxisSelf
	AxisParent
)

// Path is a compiled path expression.
type Path struct {
	Absolute bool
	Steps    []Step
	Source   string
}

type Step struct {
	Axis     Axis
	Name     string
	Wildcard bool
	Preds    []Predicate
}

type PredicateKind uint8

const (
	PredIndex PredicateKind = iota + 1
	PredLast
	PredCompare
	PredExists
)

// Predicate filters the nodes selected by a step.
type Predicate struct {
	Kind    PredicateKind
	Index   int // 1-based, PredIndex only
	Operand Operand
	Op      string
	Literal Literal
}

// Operand names the value a comparison or existence test reads, relative to
// the candidate node.
type Operand struct {
	Axis Axis // AxisChild, AxisAttribute or AxisSelf
	Name string
}

type Literal struct {
	IsNumber bool
	Num      float64
	Str      string
}

// Positional reports whether p depends on the candidate's position rather
// than its content.
func (p Predicate) Positional() bool {
	return p.Kind == PredIndex || p.Kind == PredLast
}

// Match evaluates a comparison against value. Numeric literals compare
// numerically and never match values without a numeric reading; string
// literals compare the value's text.
func (p Predicate) Match(value convert.Raw) bool {
	if p.Kind == PredExists {
		return true
	}
	if p.Literal.IsNumber {
		f, ok := numeric(value)
		if !ok {
			return false
		}
		return compareOrdered(f, p.Literal.Num, p.Op)
	}
	return compareOrdered(value.Text(), p.Literal.Str, p.Op)
}

// Creatable reports whether the path only uses steps that can be created:
// names, names with a single index predicate, and a final attribute.
func (p *Path) Creatable() bool {
	for i, s := range p.Steps {
		switch s.Axis {
		case AxisChild:
			if s.Wildcard {
				return false
			}
			if len(s.Preds) > 1 || (len(s.Preds) == 1 && s.Preds[0].Kind != PredIndex) {
				return false
			}
		case AxisAttribute:
			if s.Wildcard || i != len(p.Steps)-1 {
				return false
			}
		case AxisSelf:
			if len(s.Preds) > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (p *Path) String() string {
	return p.Source
}

func numeric(value convert.Raw) (float64, bool) {
	switch value.Kind() {
	case convert.KindInt:
		i, _ := value.Int()
		return float64(i), true
	case convert.KindFloat:
		return value.Float()
	case convert.KindString:
		s, _ := value.Str()
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

func compareOrdered[T float64 | string](a, b T, op string) bool {
	switch op {
	case "=":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}
