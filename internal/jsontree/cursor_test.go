package jsontree

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/theory/jsonpath/spec"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/tree"
)

const personJSON = `/* sample person */
{
  "firstName": "John",
  "lastName": "Smith",
  "age": 25,
  "height": 1.8,
  "population": 1E7,
  "nickname": null,
  "address": {
    "streetAddress": "21 2nd Street",
    "city": "New York",
    "state": "NY",
    "postalCode": 10021
  },
  "phoneNumbers": [
    { "type": "home", "number": "212 555-1234" },
    { "type": "fax", "number": "646 555-4567" }
  ],
  "favourites": ["red", "blue", "red"]
}`

func mustParse(t *testing.T, doc string) *Cursor {
	t.Helper()
	c, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return c
}

func TestLookup(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personJSON)

	tests := []struct {
		path string
		want convert.Raw
	}{
		{path: "firstName", want: convert.RawString("John")},
		{path: "/age", want: convert.RawInt(25)},
		{path: "height", want: convert.RawFloat(1.8)},
		{path: "population", want: convert.RawFloat(1e7)},
		{path: "nickname", want: convert.RawNull()},
		{path: "address/city", want: convert.RawString("New York")},
		{path: "phoneNumbers/type", want: convert.RawString("home")},
		{path: "phoneNumbers[2]/number", want: convert.RawString("646 555-4567")},
		{path: "phoneNumbers[type='fax']/number", want: convert.RawString("646 555-4567")},
		{path: "phoneNumbers[last()]/type", want: convert.RawString("fax")},
		{path: "favourites", want: convert.RawString(`["red","blue","red"]`)},
		{path: "favourites[2]", want: convert.RawString("blue")},
		{path: "address/postalCode/../state", want: convert.RawString("NY")},
		{path: "address[postalCode>10000]/city", want: convert.RawString("New York")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := c.Lookup(tt.path)
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Fatalf("Lookup(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLookupErrors(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personJSON)

	if _, err := c.Lookup("address/country"); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("Lookup(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := c.Lookup("address["); !errors.Is(err, tree.ErrInvalidPath) {
		t.Fatalf("Lookup(malformed) error = %v, want ErrInvalidPath", err)
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personJSON)

	got, err := c.Values("favourites")
	if err != nil {
		t.Fatalf("Values(favourites) error = %v", err)
	}
	want := []convert.Raw{convert.RawString("red"), convert.RawString("blue"), convert.RawString("red")}
	if !slicesEqual(got, want) {
		t.Fatalf("Values(favourites) = %v, want %v", got, want)
	}

	got, err = c.Values("phoneNumbers/type")
	if err != nil {
		t.Fatalf("Values(phoneNumbers/type) error = %v", err)
	}
	want = []convert.Raw{convert.RawString("home"), convert.RawString("fax")}
	if !slicesEqual(got, want) {
		t.Fatalf("Values(phoneNumbers/type) = %v, want %v", got, want)
	}

	got, err = c.Values("missing")
	if err != nil || len(got) != 0 {
		t.Fatalf("Values(missing) = (%v, %v), want empty", got, err)
	}
}

func slicesEqual(a, b []convert.Raw) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCreateAndSet(t *testing.T) {
	t.Parallel()

	c := New(tree.FormatJSON)
	steps := []struct {
		path  string
		value convert.Raw
	}{
		{path: "name/first", value: convert.RawString("Jane")},
		{path: "tags[2]", value: convert.RawString("b")},
		{path: "tags[1]", value: convert.RawString("a")},
		{path: "meta/@id", value: convert.RawInt(7)},
		{path: "score", value: convert.RawFloat(10000000)},
		{path: "gone", value: convert.RawNull()},
	}
	for _, s := range steps {
		if err := c.Set(s.path, s.value); err != nil {
			t.Fatalf("Set(%q) error = %v", s.path, err)
		}
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, tree.Compact); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := `{"name":{"first":"Jane"},"tags":["a","b"],"meta":{"id":7},"score":10000000,"gone":null}`
	if got := buf.String(); got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}
}

func TestCreateRejectsWildcards(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personJSON)
	if _, err := c.Create("contact/*"); !errors.Is(err, tree.ErrNotSupported) {
		t.Fatalf("Create(wildcard) error = %v, want ErrNotSupported", err)
	}
	if _, err := c.Create("phoneNumbers[type='work']/number"); !errors.Is(err, tree.ErrNotSupported) {
		t.Fatalf("Create(unmatched predicate) error = %v, want ErrNotSupported", err)
	}
	if err := c.Set("firstName/inner", convert.RawString("x")); !errors.Is(err, tree.ErrNotSupported) {
		t.Fatalf("Set(below scalar) error = %v, want ErrNotSupported", err)
	}
}

func TestSetExistingMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path  string
		value convert.Raw
	}{
		{path: "phoneNumbers[type='home']/number", value: convert.RawString("212 555-0000")},
		{path: "address/*", value: convert.RawString("22 3rd Street")},
		{path: "phoneNumbers[last()]/type", value: convert.RawString("mobile")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			c := mustParse(t, personJSON)
			if err := c.Set(tt.path, tt.value); err != nil {
				t.Fatalf("Set(%q) error = %v", tt.path, err)
			}
			got, err := c.Lookup(tt.path)
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.path, err)
			}
			if got != tt.value {
				t.Fatalf("Lookup(%q) = %v, want %v", tt.path, got, tt.value)
			}
		})
	}

	c := mustParse(t, personJSON)
	if err := c.Set("phoneNumbers[type='fax']/number", convert.RawString("9")); err != nil {
		t.Fatalf("Set(fax number) error = %v", err)
	}
	if got, _ := c.Lookup("phoneNumbers[1]/number"); got != convert.RawString("212 555-1234") {
		t.Fatalf("home number = %v, want it unchanged", got)
	}
	if got, _ := c.Lookup("phoneNumbers[2]/number"); got != convert.RawString("9") {
		t.Fatalf("fax number = %v, want 9", got)
	}
}

func TestSetList(t *testing.T) {
	t.Parallel()

	c := mustParse(t, `{"a":1,"list":"x","b":2}`)
	if err := c.SetList("list", []convert.Raw{convert.RawInt(1), convert.RawInt(2)}); err != nil {
		t.Fatalf("SetList() error = %v", err)
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, tree.Compact); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got, want := buf.String(), `{"a":1,"list":[1,2],"b":2}`; got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}
}

func TestSetNodes(t *testing.T) {
	t.Parallel()

	src := mustParse(t, personJSON)
	phones, err := src.Select("phoneNumbers")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	dst := New(tree.FormatJSON)
	if err := dst.SetNodes("contacts", phones); err != nil {
		t.Fatalf("SetNodes() error = %v", err)
	}
	if err := dst.Set("contacts[1]/type", convert.RawString("work")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, _ := dst.Lookup("contacts[1]/type")
	if got != convert.RawString("work") {
		t.Fatalf("Lookup(contacts[1]/type) = %v, want work", got)
	}
	orig, _ := src.Lookup("phoneNumbers[1]/type")
	if orig != convert.RawString("home") {
		t.Fatalf("source changed through copy: %v", orig)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personJSON)

	n, err := c.Remove("address/country")
	if err != nil || n != 0 {
		t.Fatalf("Remove(missing) = (%d, %v), want (0, nil)", n, err)
	}

	n, err = c.Remove("address")
	if err != nil || n != 1 {
		t.Fatalf("Remove(address) = (%d, %v), want (1, nil)", n, err)
	}
	if _, err := c.Lookup("address/city"); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("Lookup(address/city) after removal error = %v", err)
	}
	if got, _ := c.Lookup("lastName"); got != convert.RawString("Smith") {
		t.Fatalf("sibling lastName = %v, want Smith", got)
	}

	n, err = c.Remove("favourites[.='red']")
	if err != nil || n != 2 {
		t.Fatalf("Remove(favourites red) = (%d, %v), want (2, nil)", n, err)
	}
	if got, _ := c.Lookup("favourites"); got != convert.RawString(`["blue"]`) {
		t.Fatalf("favourites = %v, want [\"blue\"]", got)
	}
}

func TestChildren(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personJSON)
	got, err := c.Children()
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	want := []string{"firstName", "lastName", "age", "height", "population", "nickname", "address", "phoneNumbers", "favourites"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Children() mismatch (-want +got):\n%s", diff)
	}

	phones, _ := c.First("phoneNumbers")
	got, _ = phones.Children()
	if diff := cmp.Diff([]string{"type", "number"}, got); diff != "" {
		t.Fatalf("phoneNumbers Children() mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personJSON)
	nodes, err := c.Query("$.phoneNumbers[?@.type == 'fax'].number")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("Query() returned %d nodes, want 1", len(nodes))
	}
	got, _ := nodes[0].Lookup(".")
	if got != convert.RawString("646 555-4567") {
		t.Fatalf("Query() node = %v, want 646 555-4567", got)
	}

	if _, err := c.Query("$[?"); !errors.Is(err, tree.ErrInvalidPath) {
		t.Fatalf("Query(malformed) error = %v, want ErrInvalidPath", err)
	}
}

func TestQueryQuotedNames(t *testing.T) {
	t.Parallel()

	c := mustParse(t, `{"a b":{"it's":[10,20]}}`)
	nodes, err := c.Query(`$['a b']["it's"][1]`)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("Query() returned %d nodes, want 1", len(nodes))
	}
	if got, _ := nodes[0].Lookup("."); got != convert.RawInt(20) {
		t.Fatalf("Query() node = %v, want 20", got)
	}

	if _, ok := resolve(c.node, spec.Normalized(spec.Name("missing"))); ok {
		t.Fatal("resolve(missing) ok = true")
	}
	if _, ok := resolve(c.node, spec.Normalized(spec.Name("a b"), spec.Name("it's"), spec.Index(5))); ok {
		t.Fatal("resolve(out of range) ok = true")
	}
}

func TestEncodePretty(t *testing.T) {
	t.Parallel()

	c := mustParse(t, `{"a":[1,2.5],"b":{"c":"<x>"}}`)
	var buf bytes.Buffer
	if err := c.Encode(&buf, tree.Pretty); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := "{\n  \"a\": [\n    1,\n    2.5\n  ],\n  \"b\": {\n    \"c\": \"<x>\"\n  }\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("Encode(pretty) = %q, want %q", got, want)
	}
}

func TestEqualIgnoresKeyOrder(t *testing.T) {
	t.Parallel()

	a := mustParse(t, `{"x":1,"y":[1,2]}`)
	b := mustParse(t, `{"y":[1,2],"x":1}`)
	if !a.Equal(b) {
		t.Fatal("Equal() = false for reordered keys")
	}
	c := mustParse(t, `{"y":[2,1],"x":1}`)
	if a.Equal(c) {
		t.Fatal("Equal() = true for reordered array")
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "{", `{"a":1} {"b":2}`, "/* open"} {
		if _, err := Parse(strings.NewReader(doc)); !errors.Is(err, tree.ErrMalformed) {
			t.Fatalf("Parse(%q) error = %v, want ErrMalformed", doc, err)
		}
	}
}
