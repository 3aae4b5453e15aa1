package gamedata

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Element is a generic XML element tree. The asset files use deeply
// nested, loosely-schemed XML, so extractors query by element name
// rather than decoding into fixed structs.
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element
	Text     string
}

// UnmarshalXML decodes an element and its full subtree.
func (e *Element) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	e.Name = start.Name.Local
	e.Attrs = make(map[string]string, len(start.Attr))
	for _, a := range start.Attr {
		e.Attrs[a.Name.Local] = a.Value
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Element{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case xml.CharData:
			e.Text += string(t)
		case xml.EndElement:
			return nil
		}
	}
}

// Attr returns the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	return e.Attrs[name]
}

// Find returns the first descendant with the given element name, or nil.
func (e *Element) Find(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	for _, c := range e.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant with the given element name, in
// document order.
func (e *Element) FindAll(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
		out = append(out, c.FindAll(name)...)
	}
	return out
}

// Child returns the first direct child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// LoadXML parses an XML file into an element tree.
func LoadXML(path string) (*Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseXML(data)
}

// ParseXML parses XML bytes into an element tree rooted at the document
// element.
func ParseXML(data []byte) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			root := &Element{}
			if err := root.UnmarshalXML(dec, start); err != nil {
				return nil, fmt.Errorf("malformed xml: %w", err)
			}
			return root, nil
		}
	}
}

// SafeInt parses an integer attribute. The asset files sometimes store
// integers as floats ("93000.0") or omit the attribute entirely.
func SafeInt(value string, def int) int {
	if value == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return def
	}
	return int(f)
}

// SafeFloat parses a float attribute, returning def on any failure.
func SafeFloat(value string, def float64) float64 {
	if value == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return def
	}
	return f
}

// ParseListAttr parses attributes of the form "[argon, hatikvah]" into
// their elements. Bare values split on whitespace, so single tokens
// parse as a single-element list.
func ParseListAttr(value string) []string {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return nil
		}
		var out []string
		for _, part := range strings.Split(inner, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return strings.Fields(s)
}
