// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package parser

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

type EventKind int

const (
	Enter EventKind = iota
	Leave
)

func (k EventKind) String() string {
	if k == Enter {
		return "enter"
	}
	return "leave"
}

// Event is a single enter or leave tag of the input document.
type Event struct {
	Kind  EventKind
	Name  string
	Attrs []xml.Attr
	// Character data read between the previous event and this one
	Text string
	// Byte offset at which the tag starts
	Offset int64
	Line   int
	Column int
}

// Attr returns the value of an unprefixed attribute.
func (e Event) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Tag renders the event the way it appears in the document, e.g. "<resource>"
// or "</text>".
func (e Event) Tag() string {
	if e.Kind == Enter {
		return "<" + e.Name + ">"
	}
	return "</" + e.Name + ">"
}

// Cursor is a forward-only source of enter/leave events. Nested parsing
// routines receive the cursor by pointer, consume the events of their own
// subtree and return at their closing tag.
//
// Tokens are read with RawToken so that a closing tag that does not match its
// opening tag reaches the grammar instead of failing inside the tokenizer.
type Cursor struct {
	dec  *xml.Decoder
	src  *recordingReader
	text strings.Builder

	captureStart int64
	capturing    bool
}

func NewCursor(r io.Reader) *Cursor {
	src := &recordingReader{r: bufio.NewReader(r)}
	return &Cursor{
		dec: xml.NewDecoder(src),
		src: src,
	}
}

// Next returns the next enter or leave event. Comments, processing
// instructions and directives are skipped; character data is collected into
// the Text of the following event.
func (c *Cursor) Next() (Event, error) {
	c.text.Reset()

	for {
		offset := c.dec.InputOffset()
		line, column := c.dec.InputPos()

		tok, err := c.dec.RawToken()
		if errors.Is(err, io.EOF) {
			return Event{}, &StructuralParseError{
				Found:  "end of document",
				Line:   line,
				Column: column,
				Reason: "document ended before the root element was closed",
			}
		}
		if err != nil {
			return Event{}, &StructuralParseError{
				Found:  "malformed markup",
				Line:   line,
				Column: column,
				Reason: err.Error(),
			}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return Event{
				Kind:   Enter,
				Name:   tagName(t.Name),
				Attrs:  t.Attr,
				Text:   c.text.String(),
				Offset: offset,
				Line:   line,
				Column: column,
			}, nil
		case xml.EndElement:
			return Event{
				Kind:   Leave,
				Name:   tagName(t.Name),
				Text:   c.text.String(),
				Offset: offset,
				Line:   line,
				Column: column,
			}, nil
		case xml.CharData:
			c.text.Write(t)
		}
	}
}

// BeginCapture starts recording the raw input that follows the element that
// has just been entered.
func (c *Cursor) BeginCapture() error {
	if c.capturing {
		return fmt.Errorf("raw capture already in progress")
	}
	c.captureStart = c.dec.InputOffset()
	c.capturing = true
	return c.src.begin(c.captureStart)
}

// EndCapture stops recording and returns the raw bytes between the start of
// the capture and the start of the given leave event, exactly as they appear
// in the input.
func (c *Cursor) EndCapture(leave Event) (string, error) {
	if !c.capturing {
		return "", fmt.Errorf("no raw capture in progress")
	}
	c.capturing = false
	return c.src.end(c.captureStart, leave.Offset)
}

func tagName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// keep a few trailing bytes while not recording; the decoder may have read one
// byte ahead of its reported offset
const readBehind = 16

// recordingReader hands bytes to the decoder one at a time and keeps a copy of
// them while a capture is active.
type recordingReader struct {
	r         *bufio.Reader
	buf       []byte
	base      int64 // input offset of buf[0]
	offset    int64 // input offset of the next byte to be read
	recording bool
}

func (rr *recordingReader) ReadByte() (byte, error) {
	b, err := rr.r.ReadByte()
	if err != nil {
		return b, err
	}

	rr.buf = append(rr.buf, b)
	rr.offset++

	if !rr.recording && len(rr.buf) > readBehind {
		drop := len(rr.buf) - readBehind
		rr.buf = append(rr.buf[:0], rr.buf[drop:]...)
		rr.base += int64(drop)
	}

	return b, nil
}

func (rr *recordingReader) Read(p []byte) (int, error) {
	for i := range p {
		b, err := rr.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}

func (rr *recordingReader) begin(at int64) error {
	if at < rr.base || at > rr.offset {
		return fmt.Errorf("cannot capture from offset %d, buffered input starts at %d", at, rr.base)
	}
	rr.buf = append(rr.buf[:0], rr.buf[at-rr.base:]...)
	rr.base = at
	rr.recording = true
	return nil
}

func (rr *recordingReader) end(from, to int64) (string, error) {
	rr.recording = false
	if from < rr.base || to < from || to > rr.offset {
		return "", fmt.Errorf("invalid capture range %d-%d", from, to)
	}
	return string(rr.buf[from-rr.base : to-rr.base]), nil
}
