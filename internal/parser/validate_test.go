// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWellFormedValidator(t *testing.T) {
	v := WellFormedValidator{}

	t.Run("valid document file", func(t *testing.T) {
		assert.NoError(t, v.ValidateFile("testdata/books.xml"))
	})

	t.Run("missing file", func(t *testing.T) {
		err := v.ValidateFile("testdata/missing.xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open")
	})

	tests := []struct {
		name   string
		doc    string
		reason string
	}{
		{
			name:   "mismatched tags",
			doc:    `<knora><resource></text></knora>`,
			reason: "element <resource> closed by </text>",
		},
		{
			name:   "unclosed root",
			doc:    `<knora><resource></resource>`,
			reason: "unexpected EOF",
		},
		{
			name:   "wrong root",
			doc:    `<upload></upload>`,
			reason: "root element must be <knora>, found <upload>",
		},
		{
			name:   "empty document",
			doc:    ``,
			reason: "document has no root element",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate("doc.xml", strings.NewReader(tt.doc))
			require.Error(t, err)

			var violation *SchemaViolation
			require.True(t, errors.As(err, &violation))
			assert.Equal(t, "doc.xml", violation.Path)
			assert.Contains(t, violation.Reason, tt.reason)
		})
	}
}
