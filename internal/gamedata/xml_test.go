package gamedata

import (
	"testing"
)

func TestParseXML_FindAndAttrs(t *testing.T) {
	doc := []byte(`<wares>
		<ware id="hullparts" transport="container">
			<price min="10" average="20" max="30"/>
			<production time="60.0" method="default">
				<primary>
					<ware ware="energycells" amount="40"/>
				</primary>
			</production>
		</ware>
	</wares>`)

	root, err := ParseXML(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wares := root.FindAll("ware")
	// Outer <ware> plus the recipe input <ware>.
	if len(wares) != 2 {
		t.Fatalf("expected 2 ware elements, got %d", len(wares))
	}

	if got := wares[0].Attr("id"); got != "hullparts" {
		t.Errorf("expected id 'hullparts', got %q", got)
	}

	price := root.Find("price")
	if price == nil {
		t.Fatal("expected to find price element")
	}
	if got := price.Attr("average"); got != "20" {
		t.Errorf("expected average '20', got %q", got)
	}

	prod := wares[0].Child("production")
	if prod == nil {
		t.Fatal("expected direct production child")
	}
	if prod.Child("primary") == nil {
		t.Error("expected primary child under production")
	}
}

func TestParseXML_Malformed(t *testing.T) {
	if _, err := ParseXML([]byte(`<a><b></a>`)); err == nil {
		t.Error("expected error for mismatched tags")
	}
}

func TestSafeInt(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{"93000.0", 0, 93000},
		{"", 7, 7},
		{"invalid", 7, 7},
		{" 12 ", 0, 12},
	}
	for _, c := range cases {
		if got := SafeInt(c.in, c.def); got != c.want {
			t.Errorf("SafeInt(%q, %d) = %d, want %d", c.in, c.def, got, c.want)
		}
	}
}

func TestSafeFloat(t *testing.T) {
	if got := SafeFloat("3.5", 0); got != 3.5 {
		t.Errorf("expected 3.5, got %v", got)
	}
	if got := SafeFloat("bogus", 1.25); got != 1.25 {
		t.Errorf("expected default 1.25, got %v", got)
	}
}

func TestParseListAttr(t *testing.T) {
	got := ParseListAttr("[argon, hatikvah]")
	if len(got) != 2 || got[0] != "argon" || got[1] != "hatikvah" {
		t.Errorf("unexpected list: %v", got)
	}

	if got := ParseListAttr("terran"); len(got) != 1 || got[0] != "terran" {
		t.Errorf("expected single-element list, got %v", got)
	}

	// bare tag attributes are whitespace separated
	if got := ParseListAttr("equipment component"); len(got) != 2 || got[1] != "component" {
		t.Errorf("expected whitespace split, got %v", got)
	}

	if got := ParseListAttr("[]"); got != nil {
		t.Errorf("expected nil for empty list, got %v", got)
	}
	if got := ParseListAttr(""); got != nil {
		t.Errorf("expected nil for empty attr, got %v", got)
	}
}
