package jsontree

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/tree"
)

const personYAML = `firstName: John
age: 25
height: 1.8
big: 18446744073709551615
active: true
address:
  city: New York
  state: NY
favourites:
  - red
  - blue
`

func TestParseYAML(t *testing.T) {
	t.Parallel()

	c, err := ParseYAML(strings.NewReader(personYAML))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if c.Format() != tree.FormatYAML {
		t.Fatalf("Format() = %v, want yaml", c.Format())
	}

	tests := []struct {
		path string
		want convert.Raw
	}{
		{path: "firstName", want: convert.RawString("John")},
		{path: "age", want: convert.RawInt(25)},
		{path: "height", want: convert.RawFloat(1.8)},
		{path: "big", want: convert.RawString("18446744073709551615")},
		{path: "active", want: convert.RawBool(true)},
		{path: "address/state", want: convert.RawString("NY")},
		{path: "favourites[2]", want: convert.RawString("blue")},
	}
	for _, tt := range tests {
		got, err := c.Lookup(tt.path)
		if err != nil || got != tt.want {
			t.Fatalf("Lookup(%q) = (%v, %v), want %v", tt.path, got, err, tt.want)
		}
	}

	children, _ := c.Children()
	if got := strings.Join(children, ","); got != "firstName,age,height,big,active,address,favourites" {
		t.Fatalf("Children() = %s, want document order", got)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := ParseYAML(strings.NewReader(personYAML))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if err := c.Set("population", convert.RawFloat(1e7)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	for _, style := range []tree.Style{tree.Pretty, tree.Compact} {
		var buf bytes.Buffer
		if err := c.Encode(&buf, style); err != nil {
			t.Fatalf("Encode(%v) error = %v", style, err)
		}
		if strings.Contains(buf.String(), "e+") {
			t.Fatalf("Encode(%v) used exponent notation:\n%s", style, buf.String())
		}
		back, err := ParseYAML(&buf)
		if err != nil {
			t.Fatalf("ParseYAML(Encode(%v)) error = %v", style, err)
		}
		if !c.Equal(back) {
			t.Fatalf("ParseYAML(Encode(%v)) differs from source", style)
		}
	}
}

func TestParseYAMLMalformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseYAML(strings.NewReader("a: [1, 2")); !errors.Is(err, tree.ErrMalformed) {
		t.Fatalf("ParseYAML(malformed) error = %v, want ErrMalformed", err)
	}
}
