package convert

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errInexact = errors.New("value is not an exact integer")
	errRange   = errors.New("value out of range")
)

// Numeric carries the parsing policy shared by every numeric converter.
// Strings and floats in scientific notation are re-rendered as plain decimal
// strings before they reach ParseString, so 1E7 reads as 10000000.
type Numeric[T any] struct {
	// Name identifies the target type in error messages.
	Name        string
	ParseString func(s string) (T, error)
	FromFloat   func(f float64) (T, error)
	FromInt     func(i int64) (T, error)
	ToRaw       func(v T) (Raw, error)
}

func (n Numeric[T]) Read(raw Raw) (T, error) {
	var zero T

	switch raw.Kind() {
	case KindString:
		s, _ := raw.Str()
		return n.readString(s)
	case KindFloat:
		f, _ := raw.Float()
		if strings.Contains(strconv.FormatFloat(f, 'g', -1, 64), "e") {
			plain, err := plainFromFloat(f)
			if err != nil {
				return zero, fmt.Errorf("%w: cannot convert float value %s to %s: %w", ErrConversion, raw, n.Name, err)
			}
			return n.readString(plain)
		}
		v, err := n.FromFloat(f)
		if err != nil {
			return zero, fmt.Errorf("%w: cannot convert float value %s to %s: %w", ErrConversion, raw, n.Name, err)
		}
		return v, nil
	case KindInt:
		i, _ := raw.Int()
		v, err := n.FromInt(i)
		if err != nil {
			return zero, fmt.Errorf("%w: cannot convert int value %s to %s: %w", ErrConversion, raw, n.Name, err)
		}
		return v, nil
	default:
		return zero, cannotConvert(raw, n.Name)
	}
}

func (n Numeric[T]) Write(v T) (Raw, error) {
	return n.ToRaw(v)
}

func (n Numeric[T]) readString(s string) (T, error) {
	var zero T

	literal := strings.TrimSpace(s)
	if strings.Contains(strings.ToLower(literal), "e") {
		plain, err := PlainDecimal(literal)
		if err != nil {
			return zero, cannotParse(s, n.Name, err)
		}
		literal = plain
	}

	v, err := n.ParseString(literal)
	if err != nil {
		return zero, cannotParse(s, n.Name, err)
	}
	return v, nil
}

// PlainDecimal re-renders a numeric literal, possibly in scientific notation,
// as a plain decimal string.
func PlainDecimal(literal string) (string, error) {
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func plainFromFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%v has no decimal form", f)
	}
	return decimal.NewFromFloat(f).String(), nil
}

// exactInt narrows f to a signed integer of the given width, refusing
// fractional or out-of-range values.
func exactInt(f float64, bits int) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errInexact
	}
	limit := math.Exp2(float64(bits - 1))
	if f < -limit || f >= limit {
		return 0, errRange
	}
	return int64(f), nil
}

func fitsBits(i int64, bits int) error {
	if bits >= 64 {
		return nil
	}
	limit := int64(1) << (bits - 1)
	if i < -limit || i >= limit {
		return errRange
	}
	return nil
}
