package xmltree

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/tree"
)

const personXML = `<?xml version="1.0" encoding="UTF-8"?>
<person id="42">
  <firstName>John</firstName>
  <lastName>Smith</lastName>
  <age>25</age>
  <address>
    <city>New York</city>
    <state>NY</state>
  </address>
  <phoneNumber type="home">212 555-1234</phoneNumber>
  <phoneNumber type="fax">646 555-4567</phoneNumber>
</person>
`

const header = `<?xml version="1.0" encoding="UTF-8"?>`

func mustParse(t *testing.T, doc string) *Cursor {
	t.Helper()
	c, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return c
}

func compact(t *testing.T, c *Cursor) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Encode(&buf, tree.Compact); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.String()
}

func TestLookup(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personXML)

	tests := []struct {
		path string
		want string
	}{
		{path: "firstName", want: "John"},
		{path: "/person/age", want: "25"},
		{path: "@id", want: "42"},
		{path: "address/city", want: "New York"},
		{path: "phoneNumber[2]", want: "646 555-4567"},
		{path: "phoneNumber[@type='fax']", want: "646 555-4567"},
		{path: "phoneNumber[last()]/@type", want: "fax"},
		{path: "address/city/../state", want: "NY"},
		{path: "address", want: "<address><city>New York</city><state>NY</state></address>"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := c.Lookup(tt.path)
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.path, err)
			}
			if got != convert.RawString(tt.want) {
				t.Fatalf("Lookup(%q) = %v, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLookupErrors(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personXML)

	if _, err := c.Lookup("address/country"); !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("Lookup(missing) error = %v, want ErrNotFound", err)
	}
	for _, path := range []string{"address[", "//city", "address/"} {
		if _, err := c.Lookup(path); !errors.Is(err, tree.ErrInvalidPath) {
			t.Fatalf("Lookup(%q) error = %v, want ErrInvalidPath", path, err)
		}
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personXML)

	got, err := c.Values("phoneNumber")
	if err != nil {
		t.Fatalf("Values() error = %v", err)
	}
	want := []convert.Raw{convert.RawString("212 555-1234"), convert.RawString("646 555-4567")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Values(phoneNumber) = %v, want %v", got, want)
	}

	got, err = c.Values("missing")
	if err != nil || len(got) != 0 {
		t.Fatalf("Values(missing) = (%v, %v), want empty", got, err)
	}
}

func TestCreateAndSet(t *testing.T) {
	t.Parallel()

	c, err := New("order")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	steps := []struct {
		path  string
		value convert.Raw
	}{
		{path: "customer/name", value: convert.RawString("Jane")},
		{path: "@id", value: convert.RawInt(7)},
		{path: "item[2]/sku", value: convert.RawString("B")},
		{path: "item[1]/sku", value: convert.RawString("A")},
		{path: "/order/total", value: convert.RawFloat(10000000)},
		{path: "customer/name", value: convert.RawString("Janet")},
	}
	for _, s := range steps {
		if err := c.Set(s.path, s.value); err != nil {
			t.Fatalf("Set(%q) error = %v", s.path, err)
		}
	}

	want := header + `<order id="7"><customer><name>Janet</name></customer>` +
		`<item><sku>A</sku></item><item><sku>B</sku></item><total>10000000</total></order>`
	if got := compact(t, c); got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}
}

func TestCreateErrors(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personXML)

	tests := []string{"/other/x", "contact/*", "phoneNumber[@type='x']/extra", "/person[2]/x"}
	for _, path := range tests {
		if _, err := c.Create(path); !errors.Is(err, tree.ErrNotSupported) {
			t.Fatalf("Create(%q) error = %v, want ErrNotSupported", path, err)
		}
	}
	if _, err := New("bad/name"); !errors.Is(err, tree.ErrInvalidPath) {
		t.Fatalf("New(bad/name) error = %v, want ErrInvalidPath", err)
	}
}

func TestSetExistingMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "phoneNumber[@type='fax']", want: `<phoneNumber type="fax">9</phoneNumber>`},
		{path: "address/*", want: `<address><city>9</city><state>NY</state></address>`},
		{path: "phoneNumber[last()]/@type", want: `<phoneNumber type="9">646 555-4567</phoneNumber>`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			c := mustParse(t, personXML)
			if err := c.Set(tt.path, convert.RawString("9")); err != nil {
				t.Fatalf("Set(%q) error = %v", tt.path, err)
			}
			if got := compact(t, c); !strings.Contains(got, tt.want) {
				t.Fatalf("Encode() = %s, want it to contain %s", got, tt.want)
			}
			if got := compact(t, c); !strings.Contains(got, `<phoneNumber type="home">212 555-1234</phoneNumber>`) {
				t.Fatalf("Encode() = %s, want home phone unchanged", got)
			}
		})
	}
}

func TestSetListBelowMatchedParent(t *testing.T) {
	t.Parallel()

	c := mustParse(t, `<a><group id="1"><tag>old</tag></group><group id="2"/></a>`)
	values := []convert.Raw{convert.RawString("x")}
	if err := c.SetList("group[@id='2']/tag", values); err != nil {
		t.Fatalf("SetList() error = %v", err)
	}

	want := header + `<a><group id="1"><tag>old</tag></group><group id="2"><tag>x</tag></group></a>`
	if got := compact(t, c); got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}
}

func TestDeclarationNormalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		doc  string
		want string
	}{
		{doc: `<a/>`, want: header + `<a/>`},
		{doc: `<?xml version="1.0"?><a/>`, want: header + `<a/>`},
		{doc: `<?xml version="1.0" standalone="yes"?><a/>`, want: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><a/>`},
	}

	for _, tt := range tests {
		if got := compact(t, mustParse(t, tt.doc)); got != tt.want {
			t.Fatalf("Encode(%s) = %s, want %s", tt.doc, got, tt.want)
		}
	}
}

func TestSetNullEmptiesElement(t *testing.T) {
	t.Parallel()

	c := mustParse(t, `<a><b>text</b></a>`)
	if err := c.Set("b", convert.RawNull()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := c.Lookup("b")
	if err != nil || got != convert.RawString("") {
		t.Fatalf("Lookup(b) = (%v, %v), want empty string", got, err)
	}
}

func TestSetList(t *testing.T) {
	t.Parallel()

	c := mustParse(t, `<a><tags><tag>old</tag><keep/></tags></a>`)
	values := []convert.Raw{convert.RawString("x"), convert.RawInt(2)}
	if err := c.SetList("tags/tag", values); err != nil {
		t.Fatalf("SetList() error = %v", err)
	}

	want := header + `<a><tags><keep/><tag>x</tag><tag>2</tag></tags></a>`
	if got := compact(t, c); got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}

	if err := c.SetList("tags/tag[1]", values); !errors.Is(err, tree.ErrNotSupported) {
		t.Fatalf("SetList(predicate) error = %v, want ErrNotSupported", err)
	}
}

func TestSetNodes(t *testing.T) {
	t.Parallel()

	src := mustParse(t, personXML)
	phones, err := src.Select("phoneNumber")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	dst, err := New("contacts")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := dst.SetNodes("phones/phone", phones); err != nil {
		t.Fatalf("SetNodes() error = %v", err)
	}
	if err := dst.Set("phones/phone[1]/@type", convert.RawString("work")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	want := header + `<contacts><phones><phone type="work">212 555-1234</phone>` +
		`<phone type="fax">646 555-4567</phone></phones></contacts>`
	if got := compact(t, dst); got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}
	if got, _ := src.Lookup("phoneNumber[1]/@type"); got != convert.RawString("home") {
		t.Fatalf("source changed through copy: %v", got)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personXML)

	tests := []struct {
		path string
		want int
	}{
		{path: "address/country", want: 0},
		{path: "@id", want: 1},
		{path: "phoneNumber", want: 2},
		{path: "address/city", want: 1},
	}
	for _, tt := range tests {
		n, err := c.Remove(tt.path)
		if err != nil || n != tt.want {
			t.Fatalf("Remove(%q) = (%d, %v), want (%d, nil)", tt.path, n, err, tt.want)
		}
	}

	want := header + `<person><firstName>John</firstName><lastName>Smith</lastName>` +
		`<age>25</age><address><state>NY</state></address></person>`
	if got := compact(t, c); got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}

	if _, err := c.Remove("/person"); !errors.Is(err, tree.ErrNotSupported) {
		t.Fatalf("Remove(document element) error = %v, want ErrNotSupported", err)
	}
}

func TestChildren(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personXML)
	got, err := c.Children()
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	want := []string{"firstName", "lastName", "age", "address", "phoneNumber"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Children() mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	c := mustParse(t, personXML)
	nodes, err := c.Query("//phoneNumber[@type='home']")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("Query() returned %d nodes, want 1", len(nodes))
	}
	if got, _ := nodes[0].Lookup("."); got != convert.RawString("212 555-1234") {
		t.Fatalf("Query() node = %v, want 212 555-1234", got)
	}

	if _, err := c.Query("phoneNumber["); !errors.Is(err, tree.ErrInvalidPath) {
		t.Fatalf("Query(malformed) error = %v, want ErrInvalidPath", err)
	}
}

func TestEncodePretty(t *testing.T) {
	t.Parallel()

	c := mustParse(t, `<root><a>1</a><b/><c x="&lt;"><d>2</d></c></root>`)
	var buf bytes.Buffer
	if err := c.Encode(&buf, tree.Pretty); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := header + `
<root>
  <a>1</a>
  <b/>
  <c x="&lt;">
    <d>2</d>
  </c>
</root>
`
	if got := buf.String(); got != want {
		t.Fatalf("Encode(pretty) =\n%s\nwant\n%s", got, want)
	}
}

func TestEqualIgnoresIndentation(t *testing.T) {
	t.Parallel()

	a := mustParse(t, personXML)
	b := mustParse(t, strings.ReplaceAll(personXML, "\n  ", ""))
	if !a.Equal(b) {
		t.Fatal("Equal() = false for re-indented document")
	}
	if _, err := b.Remove("age"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if a.Equal(b) {
		t.Fatal("Equal() = true after removal")
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "<a>", "<a></b>"} {
		if _, err := Parse(strings.NewReader(doc)); !errors.Is(err, tree.ErrMalformed) {
			t.Fatalf("Parse(%q) error = %v, want ErrMalformed", doc, err)
		}
	}
}
