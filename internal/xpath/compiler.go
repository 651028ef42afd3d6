package xpath

import (
	"fmt"
	"strconv"
	"strings"
)

var operators = []string{"!=", "<=", ">=", "=", "<", ">"}

// Compile parses expr into a Path.
func Compile(expr string) (*Path, error) {
	src := strings.TrimSpace(expr)
	if src == "" {
		return nil, fmt.Errorf("%w: expression cannot be empty", ErrSyntax)
	}

	p := &Path{Source: src}
	rest := src
	if strings.HasPrefix(rest, "//") {
		return nil, fmt.Errorf("%w: descendant step '//' in %q", ErrNotSupported, src)
	}
	if rest[0] == '/' {
		p.Absolute = true
		rest = rest[1:]
		if rest == "" {
			return p, nil
		}
	}

	parts, err := Split(rest)
	if err != nil {
		return nil, err
	}
	for i, part := range parts {
		if part == "" {
			if i == len(parts)-1 {
				return nil, fmt.Errorf("%w: trailing '/' in %q", ErrSyntax, src)
			}
			return nil, fmt.Errorf("%w: descendant step '//' in %q", ErrNotSupported, src)
		}
		step, err := parseStep(part)
		if err != nil {
			return nil, err
		}
		if step.Axis == AxisAttribute && i != len(parts)-1 {
			return nil, fmt.Errorf("%w: attribute step %q must be last in %q", ErrSyntax, part, src)
		}
		p.Steps = append(p.Steps, step)
	}
	return p, nil
}

// Split cuts expr on '/' outside brackets and quotes.
func Split(expr string) ([]string, error) {
	var (
		parts []string
		start int
	)
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '[':
			end := findMatchingBracket(expr, i)
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '[' at position %d in %q", ErrSyntax, i, expr)
			}
			i = end
		case ']':
			return nil, fmt.Errorf("%w: unexpected ']' at position %d in %q", ErrSyntax, i, expr)
		case '/':
			parts = append(parts, expr[start:i])
			start = i + 1
		}
	}
	return append(parts, expr[start:]), nil
}

// Prefixes returns every leading sub-path of expr, shortest first, ending
// with expr itself. Malformed expressions yield only expr.
func Prefixes(expr string) []string {
	src := strings.TrimSpace(expr)
	lead := ""
	if strings.HasPrefix(src, "/") {
		lead = "/"
		src = src[1:]
	}
	parts, err := Split(src)
	if err != nil || src == "" {
		return []string{strings.TrimSpace(expr)}
	}
	out := make([]string, 0, len(parts))
	for i := range parts {
		out = append(out, lead+strings.Join(parts[:i+1], "/"))
	}
	return out
}

func parseStep(part string) (Step, error) {
	head := part
	var preds string
	if i := strings.IndexByte(part, '['); i >= 0 {
		head, preds = part[:i], part[i:]
	}
	head = strings.TrimSpace(head)

	var step Step
	switch {
	case head == ".":
		step.Axis = AxisSelf
	case head == "..":
		step.Axis = AxisParent
	case head == "*":
		step.Wildcard = true
	case head == "@*":
		step.Axis = AxisAttribute
		step.Wildcard = true
	case strings.HasPrefix(head, "@"):
		name, err := parseName(head[1:], part)
		if err != nil {
			return Step{}, err
		}
		step.Axis = AxisAttribute
		step.Name = name
	default:
		name, err := parseName(head, part)
		if err != nil {
			return Step{}, err
		}
		step.Name = name
	}

	for preds != "" {
		end := findMatchingBracket(preds, 0)
		if preds[0] != '[' || end < 0 {
			return Step{}, fmt.Errorf("%w: malformed predicate in %q", ErrSyntax, part)
		}
		pred, err := parsePredicate(strings.TrimSpace(preds[1:end]))
		if err != nil {
			return Step{}, err
		}
		step.Preds = append(step.Preds, pred)
		preds = strings.TrimSpace(preds[end+1:])
	}

	if len(step.Preds) > 0 && (step.Axis == AxisAttribute || step.Axis == AxisParent) {
		return Step{}, fmt.Errorf("%w: predicates are not allowed on %q", ErrSyntax, part)
	}
	return step, nil
}

func parseName(name, part string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name in step %q", ErrSyntax, part)
	}
	if strings.ContainsAny(name, "()") || strings.Contains(name, "::") {
		return "", fmt.Errorf("%w: functions and axes in step %q", ErrNotSupported, part)
	}
	for i := 0; i < len(name); i++ {
		if !idRune(name[i]) {
			return "", fmt.Errorf("%w: unexpected character '%c' in step %q", ErrSyntax, name[i], part)
		}
	}
	return name, nil
}

func parsePredicate(s string) (Predicate, error) {
	if s == "" {
		return Predicate{}, fmt.Errorf("%w: empty predicate", ErrSyntax)
	}
	if s == "last()" {
		return Predicate{Kind: PredLast}, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return Predicate{}, fmt.Errorf("%w: index %d, indexes start at 1", ErrSyntax, n)
		}
		return Predicate{Kind: PredIndex, Index: n}, nil
	}

	if bare := unquoted(s); strings.Contains(bare, " and ") || strings.Contains(bare, " or ") {
		return Predicate{}, fmt.Errorf("%w: boolean connectives in predicate %q", ErrNotSupported, s)
	}

	opAt, op := findOperator(s)
	if opAt < 0 {
		operand, err := parseOperand(s)
		if err != nil {
			return Predicate{}, err
		}
		return Predicate{Kind: PredExists, Operand: operand}, nil
	}

	operand, err := parseOperand(strings.TrimSpace(s[:opAt]))
	if err != nil {
		return Predicate{}, err
	}
	literal, err := parseLiteral(strings.TrimSpace(s[opAt+len(op):]))
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{Kind: PredCompare, Operand: operand, Op: op, Literal: literal}, nil
}

// findOperator locates the first comparison operator outside quotes.
func findOperator(s string) (int, string) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			continue
		}
		for _, op := range operators {
			if strings.HasPrefix(s[i:], op) {
				return i, op
			}
		}
	}
	return -1, ""
}

// unquoted returns s with quoted sections removed.
func unquoted(s string) string {
	var (
		b     strings.Builder
		quote byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func parseOperand(s string) (Operand, error) {
	switch {
	case s == ".":
		return Operand{Axis: AxisSelf}, nil
	case strings.HasPrefix(s, "@"):
		name, err := parseName(s[1:], s)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Axis: AxisAttribute, Name: name}, nil
	default:
		name, err := parseName(s, s)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Axis: AxisChild, Name: name}, nil
	}
}

func parseLiteral(s string) (Literal, error) {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return Literal{Str: s[1 : len(s)-1]}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Literal{}, fmt.Errorf("%w: literal %s must be a quoted string or a number", ErrSyntax, s)
	}
	return Literal{IsNumber: true, Num: f, Str: s}, nil
}

// findMatchingBracket finds the closing bracket for the '[' at start,
// skipping brackets inside quoted strings.
func findMatchingBracket(expr string, start int) int {
	if start >= len(expr) || expr[start] != '[' {
		return -1
	}

	depth := 0
	var quote byte
	for i := start; i < len(expr); i++ {
		c := expr[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// idRune reports whether b may appear in an unquoted name.
func idRune(b byte) bool {
	return b == '_' || b == '-' || b == '.' || b == ':' ||
		(b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}
