package command

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

// Protocol verbs, as sent in the <cmd> element.
const (
	VerbConnect           = "connect"
	VerbDeviceInfo        = "getdevinfo"
	VerbStatus            = "getchlstatus"
	VerbInquire           = "inquire"
	VerbInquireDF         = "inquiredf"
	VerbStart             = "start"
	VerbStop              = "stop"
	VerbClearFlag         = "clearflag"
	VerbLight             = "light"
	VerbDownload          = "download"
	VerbDownloadLog       = "downloadlog"
	VerbDownloadStepLayer = "downloadStepLayer"
)

// ErrNoTargets is returned by batch builders called without any channel.
var ErrNoTargets = errors.New("command: batch command requires at least one target")

// Command is one BTS request: a verb and the elements that follow <cmd>.
type Command struct {
	Verb string
	Body []*Element
}

// New creates a command for verb with the given body elements.
func New(verb string, body ...*Element) *Command {
	return &Command{Verb: verb, Body: body}
}

// Marshal serializes the command as the XML fragment that goes inside the
// <bts> root element.
func (c *Command) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	cmd := xml.StartElement{Name: xml.Name{Local: "cmd"}}
	if err := enc.EncodeElement(c.Verb, cmd); err != nil {
		return nil, fmt.Errorf("command: encode %s: %w", c.Verb, err)
	}

	for _, el := range c.Body {
		if err := enc.Encode(el); err != nil {
			return nil, fmt.Errorf("command: encode %s <%s>: %w", c.Verb, el.Name, err)
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("command: encode %s: %w", c.Verb, err)
	}

	return buf.Bytes(), nil
}

// List returns the <list> element of a batch command, or nil.
func (c *Command) List() *Element {
	for _, el := range c.Body {
		if el.Name == "list" {
			return el
		}
	}

	return nil
}

// Target is the physical address of one channel as the server expects it.
type Target struct {
	IP       string
	DevType  int
	DevID    int
	SubDevID int
	ChlID    int
}

func (t Target) String() string {
	return fmt.Sprintf("%d-%d-%d", t.DevID, t.SubDevID, t.ChlID)
}

// element creates a tag carrying the full address of t.
func (t Target) element(tag string) *Element {
	return NewElement(tag).
		Attr("ip", t.IP).
		IntAttr("devtype", t.DevType).
		IntAttr("devid", t.DevID).
		IntAttr("subdevid", t.SubDevID).
		IntAttr("chlid", t.ChlID)
}

// deviceElement creates a tag carrying the address of t without the ip,
// as the download verbs expect.
func (t Target) deviceElement(tag string) *Element {
	return NewElement(tag).
		IntAttr("devtype", t.DevType).
		IntAttr("devid", t.DevID).
		IntAttr("subdevid", t.SubDevID).
		IntAttr("chlid", t.ChlID)
}

func list(children []*Element, count int) *Element {
	return NewElement("list").IntAttr("count", count).Append(children...)
}

// batch builds a command whose list holds one child per target.
func batch(verb, tag string, targets []Target, child func(*Element)) (*Command, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTargets, verb)
	}

	children := make([]*Element, 0, len(targets))
	for _, t := range targets {
		el := t.element(tag)
		child(el)
		children = append(children, el)
	}

	return New(verb, list(children, len(children))), nil
}

func flagTrue(el *Element) { el.SetText("true") }
