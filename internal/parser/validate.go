// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// WellFormedValidator is the structural check run before parsing. It reads
// the whole document with a strict tokenizer, which rejects markup that is not
// well formed, and verifies the root element.
type WellFormedValidator struct{}

func (v WellFormedValidator) ValidateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	//nolint:errcheck
	defer f.Close()

	return v.Validate(path, f)
}

func (WellFormedValidator) Validate(name string, r io.Reader) error {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	sawRoot := false
	for {
		line, column := dec.InputPos()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return &SchemaViolation{Path: name, Line: syntaxErr.Line, Reason: syntaxErr.Msg}
			}
			return &SchemaViolation{Path: name, Line: line, Column: column, Reason: err.Error()}
		}

		start, ok := tok.(xml.StartElement)
		if !ok || sawRoot {
			continue
		}
		sawRoot = true
		if start.Name.Local != tagRoot {
			return &SchemaViolation{
				Path:   name,
				Line:   line,
				Column: column,
				Reason: fmt.Sprintf("root element must be <%s>, found <%s>", tagRoot, start.Name.Local),
			}
		}
	}

	if !sawRoot {
		return &SchemaViolation{Path: name, Reason: "document has no root element"}
	}
	return nil
}
