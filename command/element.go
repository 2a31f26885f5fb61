package command

import (
	"encoding/xml"
	"strconv"
)

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of a command tree. Attributes keep the order in which
// they were added.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement creates an element with the given tag name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attr appends an attribute and returns e for chaining.
func (e *Element) Attr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// IntAttr appends an integer attribute and returns e for chaining.
func (e *Element) IntAttr(name string, value int) *Element {
	return e.Attr(name, strconv.Itoa(value))
}

// SetText sets the character data of e and returns e for chaining.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// Append adds child elements and returns e for chaining.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Lookup returns the value of the named attribute.
func (e *Element) Lookup(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// MarshalXML implements xml.Marshaler.
func (e *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	if len(e.Attrs) > 0 {
		start.Attr = make([]xml.Attr, 0, len(e.Attrs))
		for _, a := range e.Attrs {
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
		}
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}

	for _, child := range e.Children {
		if err := enc.Encode(child); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}

	return "0"
}
