// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferences_CollectsPointersAndMarkupInDocumentOrder(t *testing.T) {
	resource := Resource{
		ID: "review_1",
		Properties: []Property{
			{Name: "books:reviews", ValueType: ValueTypeResptr, Values: []Value{{Content: "book_1"}, {Content: "book_2"}}},
			{Name: "books:hasText", ValueType: ValueTypeText, Values: []Value{
				{Content: "<p>IRI:book_3:IRI IRI:book_1:IRI</p>", Markup: true, Refs: []string{"book_3", "book_1"}},
			}},
		},
	}

	assert.Equal(t, []string{"book_1", "book_2", "book_3"}, resource.References())
}

func TestReferences_IgnoresPlainValues(t *testing.T) {
	resource := Resource{
		Properties: []Property{
			{Name: "books:hasTitle", ValueType: ValueTypeText, Values: []Value{{Content: "book_1"}}},
		},
	}

	assert.Empty(t, resource.References())
}

func TestHasImage(t *testing.T) {
	assert.True(t, (&Resource{Image: "covers/dune.jpg"}).HasImage())
	assert.False(t, (&Resource{}).HasImage())
}

func TestQualifyName(t *testing.T) {
	assert.Equal(t, "books:Book", QualifyName(":Book", "books"))
	assert.Equal(t, "other:Book", QualifyName("other:Book", "books"))
	assert.Equal(t, "knora-admin:Region", QualifyName("Region", "books"))
}

func TestIsSystemGroup(t *testing.T) {
	assert.True(t, IsSystemGroup("ProjectAdmin"))
	assert.False(t, IsSystemGroup("editors"))
}

func TestProjectByShortcode(t *testing.T) {
	dir := &Directory{Projects: []Project{{ID: "p1", Shortname: "books", Shortcode: "0811"}}}

	p, ok := dir.ProjectByShortcode("0811")
	assert.True(t, ok)
	assert.Equal(t, "books", p.Shortname)

	_, ok = dir.ProjectByShortcode("0001")
	assert.False(t, ok)
}
