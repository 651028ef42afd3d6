package docpath

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

const personXML = `<?xml version="1.0" encoding="UTF-8"?>
<person id="42">
  <name>John</name>
  <age>25</age>
  <tags>
    <tag>a</tag>
    <tag>b</tag>
    <tag>a</tag>
  </tags>
</person>
`

func TestXMLDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseXML(strings.NewReader(personXML))
	if err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	if doc.Format() != XML {
		t.Fatalf("Format() = %v, want xml", doc.Format())
	}

	if got, err := doc.GetInt("age"); err != nil || got != 25 {
		t.Fatalf("GetInt(age) = (%d, %v), want 25", got, err)
	}
	if got, err := doc.GetInt("@id"); err != nil || got != 42 {
		t.Fatalf("GetInt(@id) = (%d, %v), want 42", got, err)
	}
	if got, err := doc.GetString("/person/name"); err != nil || got != "John" {
		t.Fatalf("GetString(/person/name) = (%q, %v), want John", got, err)
	}
	tags, err := doc.GetStringSet("tags/tag")
	if err != nil {
		t.Fatalf("GetStringSet() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, tags); diff != "" {
		t.Fatalf("GetStringSet() mismatch (-want +got):\n%s", diff)
	}

	err = doc.Edit().
		WithString("address/city", "Lisbon").
		WithBool("@active", true).
		Remove("tags/tag[.='a']").
		Err()
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?><person id="42" active="true"><name>John</name>` +
		`<age>25</age><tags><tag>b</tag></tags><address><city>Lisbon</city></address></person>`
	if got := compactString(t, doc); got != want {
		t.Fatalf("Bytes() = %s, want %s", got, want)
	}

	nodes, err := doc.Query("//tag")
	if err != nil || len(nodes) != 1 {
		t.Fatalf("Query(//tag) = (%d nodes, %v), want 1", len(nodes), err)
	}

	if err := doc.Remove("/person"); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("Remove(/person) error = %v, want ErrNotSupported", err)
	}

	_, err = doc.GetString("address/country")
	var pe *PathError
	if !errors.As(err, &pe) || pe.Prefix != "address" {
		t.Fatalf("GetString(address/country) error = %v, want prefix address", err)
	}
}

func TestNewXML(t *testing.T) {
	t.Parallel()

	doc, err := NewXML("order")
	if err != nil {
		t.Fatalf("NewXML() error = %v", err)
	}
	if _, err := WithList(doc, "items/sku", []string{"A", "B"}); err != nil {
		t.Fatalf("WithList() error = %v", err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<order>
  <items>
    <sku>A</sku>
    <sku>B</sku>
  </items>
</order>
`
	if got := doc.String(); got != want {
		t.Fatalf("String() =\n%s\nwant\n%s", got, want)
	}

	if _, err := NewXML("a/b"); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("NewXML(a/b) error = %v, want ErrInvalidPath", err)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("", 3600))
	id := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	shipped := civil.Date{Year: 2024, Month: time.February, Day: 29}

	doc := NewYAML()
	err := doc.Edit().
		WithTimestamp("created", created).
		WithUUID("id", id).
		WithDate("order/shipped", shipped).
		WithCurrency("order/currency", currency.EUR).
		WithFloat64("order/total", 12.5).
		Err()
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	for _, style := range []Style{Pretty, Compact} {
		data, err := doc.Bytes(style)
		if err != nil {
			t.Fatalf("Bytes(%v) error = %v", style, err)
		}
		back, err := ParseYAML(strings.NewReader(string(data)))
		if err != nil {
			t.Fatalf("ParseYAML(%s) error = %v", data, err)
		}
		if !back.Equal(doc) {
			t.Fatalf("ParseYAML(Bytes(%v)) differs from source:\n%s", style, data)
		}

		if got, err := back.GetTimestamp("created"); err != nil || !got.Equal(created) {
			t.Fatalf("GetTimestamp(created) = (%v, %v), want %v", got, err, created)
		}
		if got, err := back.GetUUID("id"); err != nil || got != id {
			t.Fatalf("GetUUID(id) = (%v, %v), want %v", got, err, id)
		}
		if got, err := back.GetDate("order/shipped"); err != nil || got != shipped {
			t.Fatalf("GetDate(order/shipped) = (%v, %v), want %v", got, err, shipped)
		}
		if got, err := back.GetCurrency("order/currency"); err != nil || got != currency.EUR {
			t.Fatalf("GetCurrency(order/currency) = (%v, %v), want EUR", got, err)
		}
	}
}

func TestFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	name := filepath.Join(dir, "person.json")
	if err := os.WriteFile(name, []byte(personJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(name)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if _, err := doc.WithInt("age", 26); err != nil {
		t.Fatalf("WithInt() error = %v", err)
	}
	if err := doc.WriteFile(name, Compact); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	back, err := ParseFile(name)
	if err != nil {
		t.Fatalf("ParseFile() after write error = %v", err)
	}
	if got, _ := back.GetInt("age"); got != 26 {
		t.Fatalf("GetInt(age) = %d, want 26", got)
	}

	untyped := filepath.Join(dir, "data")
	if err := os.WriteFile(untyped, []byte(personXML), 0o644); err != nil {
		t.Fatal(err)
	}
	xml, err := ParseFile(untyped)
	if err != nil || xml.Format() != XML {
		t.Fatalf("ParseFile(untyped xml) = (%v, %v), want xml", xml, err)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ParseFile(missing) error = %v, want fs.ErrNotExist", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"a":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(broken); !errors.Is(err, ErrMalformed) {
		t.Fatalf("ParseFile(broken) error = %v, want ErrMalformed", err)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want Format
	}{
		{name: "a.json", data: "", want: JSON},
		{name: "a.YML", data: "", want: YAML},
		{name: "a.xml", data: "{}", want: XML},
		{name: "a", data: "  <a/>", want: XML},
		{name: "a", data: "\n[1]", want: JSON},
		{name: "a", data: "/* c */ {}", want: JSON},
		{name: "a.txt", data: "a: 1", want: YAML},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.name, []byte(tt.data)); got != tt.want {
			t.Fatalf("DetectFormat(%q, %q) = %v, want %v", tt.name, tt.data, got, tt.want)
		}
	}

	if _, err := ParseFormat("toml"); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("ParseFormat(toml) error = %v, want ErrNotSupported", err)
	}
}

func TestStringIsPretty(t *testing.T) {
	t.Parallel()

	doc := NewJSON()
	if _, err := doc.WithInt("a", 1); err != nil {
		t.Fatalf("WithInt() error = %v", err)
	}
	if got, want := doc.String(), "{\n  \"a\": 1\n}\n"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
