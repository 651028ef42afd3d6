package convert

import (
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// TimestampLayout is the layout timestamps are written with.
const TimestampLayout = time.RFC3339Nano

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// StringConverter reads any scalar as its textual form.
var StringConverter = Func(
	func(raw Raw) (string, error) {
		return raw.Text(), nil
	},
	func(s string) (Raw, error) {
		return RawString(s), nil
	},
)

// BoolConverter accepts native booleans, the strings true/false, yes/no,
// 1/0 (case-insensitive) and the integers 1 and 0.
var BoolConverter = Func(
	func(raw Raw) (bool, error) {
		switch raw.Kind() {
		case KindBool:
			b, _ := raw.Bool()
			return b, nil
		case KindString:
			s, _ := raw.Str()
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "true", "1", "yes":
				return true, nil
			case "false", "0", "no", "":
				return false, nil
			}
		case KindInt:
			switch i, _ := raw.Int(); i {
			case 1:
				return true, nil
			case 0:
				return false, nil
			}
		}
		return false, cannotConvert(raw, "bool")
	},
	func(b bool) (Raw, error) {
		return RawBool(b), nil
	},
)

var IntConverter = Numeric[int]{
	Name: "int",
	ParseString: func(s string) (int, error) {
		i, err := strconv.ParseInt(s, 10, strconv.IntSize)
		return int(i), err
	},
	FromFloat: func(f float64) (int, error) {
		i, err := exactInt(f, strconv.IntSize)
		return int(i), err
	},
	FromInt: func(i int64) (int, error) {
		return int(i), fitsBits(i, strconv.IntSize)
	},
	ToRaw: func(v int) (Raw, error) {
		return RawInt(int64(v)), nil
	},
}

var Int32Converter = Numeric[int32]{
	Name: "int32",
	ParseString: func(s string) (int32, error) {
		i, err := strconv.ParseInt(s, 10, 32)
		return int32(i), err
	},
	FromFloat: func(f float64) (int32, error) {
		i, err := exactInt(f, 32)
		return int32(i), err
	},
	FromInt: func(i int64) (int32, error) {
		if err := fitsBits(i, 32); err != nil {
			return 0, err
		}
		return int32(i), nil
	},
	ToRaw: func(v int32) (Raw, error) {
		return RawInt(int64(v)), nil
	},
}

var Int64Converter = Numeric[int64]{
	Name: "int64",
	ParseString: func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	},
	FromFloat: func(f float64) (int64, error) {
		return exactInt(f, 64)
	},
	FromInt: func(i int64) (int64, error) {
		return i, nil
	},
	ToRaw: func(v int64) (Raw, error) {
		return RawInt(v), nil
	},
}

var Float32Converter = Numeric[float32]{
	Name: "float32",
	ParseString: func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	},
	FromFloat: func(f float64) (float32, error) {
		return float32(f), nil
	},
	FromInt: func(i int64) (float32, error) {
		return float32(i), nil
	},
	ToRaw: func(v float32) (Raw, error) {
		// Widen through the shortest decimal form so 1.8 stays 1.8.
		f, err := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
		if err != nil {
			return Raw{}, err
		}
		return RawFloat(f), nil
	},
}

var Float64Converter = Numeric[float64]{
	Name: "float64",
	ParseString: func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	},
	FromFloat: func(f float64) (float64, error) {
		return f, nil
	},
	FromInt: func(i int64) (float64, error) {
		return float64(i), nil
	},
	ToRaw: func(v float64) (Raw, error) {
		return RawFloat(v), nil
	},
}

var DecimalConverter = Numeric[decimal.Decimal]{
	Name:        "decimal",
	ParseString: decimal.NewFromString,
	FromFloat: func(f float64) (decimal.Decimal, error) {
		return decimal.NewFromFloat(f), nil
	},
	FromInt: func(i int64) (decimal.Decimal, error) {
		return decimal.NewFromInt(i), nil
	},
	ToRaw: func(v decimal.Decimal) (Raw, error) {
		return RawString(v.String()), nil
	},
}

var BigIntConverter = Numeric[*big.Int]{
	Name: "big.Int",
	ParseString: func(s string) (*big.Int, error) {
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.New("not an integer literal")
		}
		return i, nil
	},
	FromFloat: func(f float64) (*big.Int, error) {
		if _, err := exactInt(f, 64); err != nil {
			return nil, err
		}
		i, _ := big.NewFloat(f).Int(nil)
		return i, nil
	},
	FromInt: func(i int64) (*big.Int, error) {
		return big.NewInt(i), nil
	},
	ToRaw: func(v *big.Int) (Raw, error) {
		if v.IsInt64() {
			return RawInt(v.Int64()), nil
		}
		return RawString(v.String()), nil
	},
}

// DateConverter maps ISO 8601 calendar dates (YYYY-MM-DD).
var DateConverter = Func(
	func(raw Raw) (civil.Date, error) {
		s, ok := raw.Str()
		if !ok {
			return civil.Date{}, cannotConvert(raw, "date")
		}
		d, err := civil.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return civil.Date{}, cannotParse(s, "date", err)
		}
		return d, nil
	},
	func(d civil.Date) (Raw, error) {
		if !d.IsValid() {
			return Raw{}, fmt.Errorf("%w: invalid date %v", ErrConversion, d)
		}
		return RawString(d.String()), nil
	},
)

// TimestampConverter maps RFC 3339 timestamps, keeping the parsed offset.
// Values without an offset are read as UTC.
var TimestampConverter = Func(
	func(raw Raw) (time.Time, error) {
		s, ok := raw.Str()
		if !ok {
			return time.Time{}, cannotConvert(raw, "timestamp")
		}
		literal := strings.TrimSpace(s)
		var firstErr error
		for _, layout := range timestampLayouts {
			t, err := time.Parse(layout, literal)
			if err == nil {
				return t, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		return time.Time{}, cannotParse(s, "timestamp", firstErr)
	},
	func(t time.Time) (Raw, error) {
		return RawString(t.Format(TimestampLayout)), nil
	},
)

// URLConverter maps absolute URLs.
var URLConverter = Func(
	func(raw Raw) (*url.URL, error) {
		s, ok := raw.Str()
		if !ok {
			return nil, cannotConvert(raw, "url")
		}
		u, err := url.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, cannotParse(s, "url", err)
		}
		if u.Scheme == "" {
			return nil, cannotParse(s, "url", errors.New("missing scheme"))
		}
		return u, nil
	},
	func(u *url.URL) (Raw, error) {
		return RawString(u.String()), nil
	},
)

// CurrencyConverter maps ISO 4217 currency codes.
var CurrencyConverter = Func(
	func(raw Raw) (currency.Unit, error) {
		s, ok := raw.Str()
		if !ok {
			return currency.Unit{}, cannotConvert(raw, "currency")
		}
		u, err := currency.ParseISO(strings.TrimSpace(s))
		if err != nil {
			return currency.Unit{}, cannotParse(s, "currency", err)
		}
		return u, nil
	},
	func(u currency.Unit) (Raw, error) {
		return RawString(u.String()), nil
	},
)

var UUIDConverter = Func(
	func(raw Raw) (uuid.UUID, error) {
		s, ok := raw.Str()
		if !ok {
			return uuid.Nil, cannotConvert(raw, "uuid")
		}
		u, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return uuid.Nil, cannotParse(s, "uuid", err)
		}
		return u, nil
	},
	func(u uuid.UUID) (Raw, error) {
		return RawString(u.String()), nil
	},
)

func registerDefaults(r *Registry) {
	Register(r, StringConverter)
	Register(r, BoolConverter)

	Register[int](r, IntConverter)
	Register[int32](r, Int32Converter)
	Register[int64](r, Int64Converter)
	Register[float32](r, Float32Converter)
	Register[float64](r, Float64Converter)
	Register[decimal.Decimal](r, DecimalConverter)
	Register[*big.Int](r, BigIntConverter)

	Register(r, DateConverter)
	Register(r, TimestampConverter)

	Register(r, URLConverter)
	Register(r, CurrencyConverter)
	Register(r, UUIDConverter)

	r.Alias("string", reflect.TypeFor[string]()).
		Alias("bool", reflect.TypeFor[bool]()).
		Alias("int", reflect.TypeFor[int]()).
		Alias("int32", reflect.TypeFor[int32]()).
		Alias("int64", reflect.TypeFor[int64]()).
		Alias("float32", reflect.TypeFor[float32]()).
		Alias("float64", reflect.TypeFor[float64]()).
		Alias("decimal", reflect.TypeFor[decimal.Decimal]()).
		Alias("bigint", reflect.TypeFor[*big.Int]()).
		Alias("date", reflect.TypeFor[civil.Date]()).
		Alias("timestamp", reflect.TypeFor[time.Time]()).
		Alias("url", reflect.TypeFor[*url.URL]()).
		Alias("currency", reflect.TypeFor[currency.Unit]()).
		Alias("uuid", reflect.TypeFor[uuid.UUID]())
}
