package record

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultContainer is the element that holds per-channel results in most BTS responses.
const DefaultContainer = "list"

// Page is the decoded contents of one container element.
type Page struct {
	// Count is the count attribute declared by the server, or the number of
	// records when the container declares none.
	Count int
	// Records holds one Record per child element, in server order.
	Records []*Record
}

// Extract decodes the children of the first <list> element in payload.
func Extract(payload []byte) ([]*Record, error) {
	page, err := ExtractPage(payload, DefaultContainer)
	if err != nil {
		return nil, err
	}

	return page.Records, nil
}

// ExtractContainer decodes the children of the first element named container in payload.
func ExtractContainer(payload []byte, container string) ([]*Record, error) {
	page, err := ExtractPage(payload, container)
	if err != nil {
		return nil, err
	}

	return page.Records, nil
}

// ExtractPage decodes the first element named container and its immediate children.
//
// Every attribute of a child becomes a field. Non-blank text content of a
// child is stored under the child's tag name, which is how status and result
// strings ride along with the address attributes. Elements nested inside a
// child are skipped.
//
// A declared count attribute that differs from the number of children is a
// decode error.
func ExtractPage(payload []byte, container string) (*Page, error) {
	dec := xml.NewDecoder(bytes.NewReader(payload))

	start, err := findElement(dec, container)
	if err != nil {
		return nil, wrapDecode(payload, err)
	}

	declared := -1
	for _, a := range start.Attr {
		if a.Name.Local != "count" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(a.Value))
		if err != nil {
			return nil, decodeErr(payload, "invalid count %q on <%s>: %w", a.Value, container, err)
		}
		declared = n
	}

	page := &Page{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, decodeErr(payload, "read <%s>: %w", container, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			rec, err := readElement(dec, t)
			if err != nil {
				return nil, decodeErr(payload, "read <%s> child: %w", container, err)
			}
			page.Records = append(page.Records, rec)

		case xml.EndElement:
			page.Count = len(page.Records)
			if declared >= 0 {
				if declared != len(page.Records) {
					return nil, decodeErr(payload, "%w: <%s count=%d> has %d children",
						ErrCountMismatch, container, declared, len(page.Records))
				}
				page.Count = declared
			}

			return page, nil
		}
	}
}

// ExtractElement decodes the first element named tag in payload as a single Record.
func ExtractElement(payload []byte, tag string) (*Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(payload))

	start, err := findElement(dec, tag)
	if err != nil {
		return nil, wrapDecode(payload, err)
	}

	rec, err := readElement(dec, start)
	if err != nil {
		return nil, decodeErr(payload, "read <%s>: %w", tag, err)
	}

	return rec, nil
}

func findElement(dec *xml.Decoder, name string) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, fmt.Errorf("%w: <%s>", ErrMissingContainer, name)
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == name {
			return se, nil
		}
	}
}

// readElement consumes tokens up to the end of start and builds its Record.
func readElement(dec *xml.Decoder, start xml.StartElement) (*Record, error) {
	rec := New()
	for _, a := range start.Attr {
		rec.Set(a.Name.Local, Coerce(a.Value))
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if s := strings.TrimSpace(text.String()); s != "" {
				rec.Set(start.Name.Local, Coerce(s))
			}

			return rec, nil
		}
	}
}

func wrapDecode(payload []byte, err error) error {
	return &DecodeError{Payload: string(payload), Err: err}
}
