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

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

func testDirectory() *pkgmodel.Directory {
	return &pkgmodel.Directory{
		Projects: []pkgmodel.Project{
			{ID: "http://rdfh.ch/projects/0811", Shortname: "books", Shortcode: "0811"},
			{ID: "http://rdfh.ch/projects/0001", Shortname: "anything", Shortcode: "0001"},
		},
		Groups: []pkgmodel.Group{
			{ID: "http://rdfh.ch/groups/0811/editors", Name: "editors", Project: "http://rdfh.ch/projects/0811"},
			{ID: "http://rdfh.ch/groups/0811/reviewers", Name: "reviewers", Project: "http://rdfh.ch/projects/0811"},
			{ID: "http://rdfh.ch/groups/0001/members", Name: "members", Project: "http://rdfh.ch/projects/0001"},
		},
	}
}

func parseString(t *testing.T, doc string) (*pkgmodel.Document, error) {
	t.Helper()
	return Parse(strings.NewReader(doc), NewGroupResolver(testDirectory()))
}

// wrap places resource blocks into a minimal document of the "anything" project.
func wrap(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<knora default-ontology="anything" shortcode="0001">` + body + `</knora>`
}

func TestParseFile(t *testing.T) {
	doc, err := ParseFile("testdata/books.xml", NewGroupResolver(testDirectory()))
	require.NoError(t, err)

	assert.Equal(t, "books", doc.DefaultOntology)
	assert.Equal(t, "0811", doc.Shortcode)

	t.Run("permission sets", func(t *testing.T) {
		require.Len(t, doc.Permissions, 2)
		assert.Equal(t, pkgmodel.PermissionSet{
			ID: "res-default",
			Allows: []pkgmodel.Allow{
				{Code: "V", Group: "knora-admin:UnknownUser"},
				{Code: "CR", Group: "knora-admin:ProjectAdmin"},
				{Code: "M", Group: "http://rdfh.ch/groups/0811/editors"},
			},
		}, doc.Permissions["res-default"])
		assert.Equal(t, []pkgmodel.Allow{
			{Code: "RV", Group: "http://rdfh.ch/groups/0811/reviewers"},
		}, doc.Permissions["prop-restricted"].Allows)
	})

	require.Len(t, doc.Resources, 3)

	t.Run("resource with image and plain values", func(t *testing.T) {
		book := doc.Resources[0]
		assert.Equal(t, "book_1", book.ID)
		assert.Equal(t, "Dune", book.Label)
		assert.Equal(t, "books:Book", book.Type)
		assert.Equal(t, "res-default", book.Permissions)
		assert.Equal(t, "covers/dune.jpg", book.Image)
		assert.True(t, book.HasImage())

		require.Len(t, book.Properties, 3)

		title := book.Properties[0]
		assert.Equal(t, "books:hasTitle", title.Name)
		assert.Equal(t, pkgmodel.ValueTypeText, title.ValueType)
		require.Len(t, title.Values, 2)
		assert.Equal(t, "Dune", title.Values[0].Content)
		assert.True(t, title.Values[0].IsBare())
		assert.Equal(t, "Dune (1965)", title.Values[1].Content)
		require.NotNil(t, title.Values[1].Comment)
		assert.Equal(t, "original title", *title.Values[1].Comment)
		assert.Equal(t, "prop-restricted", title.Values[1].Permissions)

		pages := book.Properties[1]
		assert.Equal(t, pkgmodel.ValueTypeInteger, pages.ValueType)
		assert.Equal(t, "412", pages.Values[0].Content)

		genre := book.Properties[2]
		assert.Equal(t, pkgmodel.ValueTypeList, genre.ValueType)
		assert.Equal(t, "genres:science-fiction", genre.Values[0].Content)

		assert.Empty(t, book.References())
	})

	t.Run("resource with pointer and markup", func(t *testing.T) {
		review := doc.Resources[1]
		assert.Equal(t, "books:Review", review.Type)
		assert.Empty(t, review.Permissions)
		assert.False(t, review.HasImage())

		require.Len(t, review.Properties, 2)
		assert.Equal(t, "book_1", review.Properties[0].Values[0].Content)

		body := review.Properties[1].Values[0]
		assert.True(t, body.Markup)
		assert.Equal(t,
			`<p>A review of <a class="salsah-link" href="IRI:book_1:IRI">Dune</a>,<br/> see also <strong>IRI:book_1:IRI</strong>.</p>`,
			body.Content)
		assert.Equal(t, []string{"book_1"}, body.Refs)

		assert.Equal(t, []string{"book_1"}, review.References())
	})

	t.Run("unqualified names go to the admin namespace", func(t *testing.T) {
		note := doc.Resources[2]
		assert.Equal(t, "knora-admin:Annotation", note.Type)
		assert.Equal(t, "knora-admin:hasFlag", note.Properties[0].Name)
		assert.Equal(t, "true", note.Properties[0].Values[0].Content)
	})
}

func TestParse_TextIsKeptVerbatim(t *testing.T) {
	doc, err := parseString(t, wrap(`
<resource label="t" restype=":Thing" id="t1">
  <text-prop name=":hasText"><text>  two  spaces &amp; more  </text></text-prop>
</resource>`))
	require.NoError(t, err)

	assert.Equal(t, "  two  spaces & more  ", doc.Resources[0].Properties[0].Values[0].Content)
}

func TestParse_MarkupWithSeveralReferences(t *testing.T) {
	doc, err := parseString(t, wrap(`
<resource label="t" restype=":Thing" id="t1">
  <text-prop name=":hasRichtext"><text encoding="xml">IRI:b:IRI then <em>IRI:a:IRI</em> and IRI:b:IRI</text></text-prop>
</resource>`))
	require.NoError(t, err)

	value := doc.Resources[0].Properties[0].Values[0]
	assert.Equal(t, "IRI:b:IRI then <em>IRI:a:IRI</em> and IRI:b:IRI", value.Content)
	assert.Equal(t, []string{"b", "a"}, value.Refs)
}

func TestParse_MarkupReferencesWithNonASCIIIds(t *testing.T) {
	doc, err := parseString(t, wrap(`
<resource label="t" restype=":Thing" id="t1">
  <text-prop name=":hasRichtext"><text encoding="xml">see IRI:bücher_1:IRI and <em>IRI:данные-2:IRI</em></text></text-prop>
</resource>`))
	require.NoError(t, err)

	assert.Equal(t, []string{"bücher_1", "данные-2"}, doc.Resources[0].Properties[0].Values[0].Refs)
}

func TestParse_TypedValuesAreTrimmedBeforeChecking(t *testing.T) {
	doc, err := parseString(t, wrap(`
<resource label="t" restype=":Thing" id="t1">
  <integer-prop name=":hasInteger"><integer>
    42
  </integer></integer-prop>
  <boolean-prop name=":hasFlag"><boolean> false </boolean></boolean-prop>
</resource>`))
	require.NoError(t, err)

	props := doc.Resources[0].Properties
	assert.Equal(t, "42", props[0].Values[0].Content)
	assert.Equal(t, "false", props[1].Values[0].Content)
}

func TestParse_UnexpectedClosingTag(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		found    string
		expected []string
	}{
		{
			name:     "value closed by another value tag",
			body:     `<resource label="t" restype=":Thing" id="t1"><date-prop name=":hasDate"><date>GREGORIAN:CE:2014</text></date-prop></resource>`,
			found:    "</text>",
			expected: []string{"</date>"},
		},
		{
			name:     "text value closed by date",
			body:     `<resource label="t" restype=":Thing" id="t1"><text-prop name=":hasText"><text>abc</date></text-prop></resource>`,
			found:    "</date>",
			expected: []string{"</text>"},
		},
		{
			name:     "property closed by another property tag",
			body:     `<resource label="t" restype=":Thing" id="t1"><integer-prop name=":hasInteger"><integer>1</integer></decimal-prop></resource>`,
			found:    "</decimal-prop>",
			expected: []string{"</integer-prop>"},
		},
		{
			name:     "crossed markup tags",
			body:     `<resource label="t" restype=":Thing" id="t1"><text-prop name=":hasText"><text encoding="xml"><p><em>x</p></em></text></text-prop></resource>`,
			found:    "</p>",
			expected: []string{"</em>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseString(t, wrap(tt.body))
			require.Error(t, err)
			assert.Nil(t, doc)

			var parseErr *StructuralParseError
			require.True(t, errors.As(err, &parseErr), "unexpected error type %T", err)
			assert.Equal(t, tt.found, parseErr.Found)
			assert.Equal(t, tt.expected, parseErr.Expected)
			assert.Contains(t, err.Error(), tt.found)
			assert.Greater(t, parseErr.Line, 0)
		})
	}
}

func TestParse_GrammarViolations(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		found  string
		reason string
	}{
		{
			name:  "wrong root element",
			doc:   `<resources default-ontology="anything" shortcode="0001"></resources>`,
			found: "<resources>",
		},
		{
			name:   "missing shortcode",
			doc:    `<knora default-ontology="anything"></knora>`,
			found:  "<knora>",
			reason: `missing required attribute "shortcode"`,
		},
		{
			name:   "permissions after resources",
			doc:    wrap(`<resource label="t" restype=":Thing" id="t1"></resource><permissions id="p"><allow group="Creator">V</allow></permissions>`),
			found:  "<permissions>",
			reason: "permission blocks must precede all resources",
		},
		{
			name:   "duplicate permission set",
			doc:    wrap(`<permissions id="p"><allow group="Creator">V</allow></permissions><permissions id="p"><allow group="Creator">M</allow></permissions>`),
			found:  "<permissions>",
			reason: `duplicate permission set id "p"`,
		},
		{
			name:   "empty permission code",
			doc:    wrap(`<permissions id="p"><allow group="Creator"> </allow></permissions>`),
			found:  "<allow>",
			reason: "permission code must not be empty",
		},
		{
			name:   "duplicate resource id",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"></resource><resource label="b" restype=":Thing" id="t1"></resource>`),
			found:  "<resource>",
			reason: `duplicate resource id "t1"`,
		},
		{
			name:   "resource without type",
			doc:    wrap(`<resource label="a" id="t1"></resource>`),
			found:  "<resource>",
			reason: `missing required attribute "type"`,
		},
		{
			name:   "image after properties",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><uri-prop name=":hasUri"><uri>http://example.org</uri></uri-prop><image>a.jpg</image></resource>`),
			found:  "<image>",
			reason: "a resource may contain an image followed by property blocks",
		},
		{
			name:   "second image",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><image>a.jpg</image><image>b.jpg</image></resource>`),
			found:  "<image>",
			reason: "a resource may contain an image followed by property blocks",
		},
		{
			name:   "unknown property tag",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><blob-prop name=":hasBlob"><blob>x</blob></blob-prop></resource>`),
			found:  "<blob-prop>",
			reason: "a resource may contain an image followed by property blocks",
		},
		{
			name:   "value of the wrong type",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><integer-prop name=":hasInteger"><decimal>1.5</decimal></integer-prop></resource>`),
			found:  "<decimal>",
			reason: "<integer-prop> may only contain <integer> values",
		},
		{
			name:   "property without values",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><integer-prop name=":hasInteger"></integer-prop></resource>`),
			found:  "</integer-prop>",
			reason: "property anything:hasInteger has no values",
		},
		{
			name:   "list property without list",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><list-prop name=":hasList"><list>a</list></list-prop></resource>`),
			found:  "<list-prop>",
			reason: "list properties require a list attribute",
		},
		{
			name:   "markup on a non text value",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><uri-prop name=":hasUri"><uri encoding="xml">http://example.org</uri></uri-prop></resource>`),
			found:  "<uri>",
			reason: "only text values may be encoded as markup",
		},
		{
			name:   "tag inside a plain value",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><text-prop name=":hasText"><text>a <em>b</em></text></text-prop></resource>`),
			found:  "<em>",
			reason: "value elements may contain no other tags",
		},
		{
			name:   "markup tag outside the allow-list",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><text-prop name=":hasText"><text encoding="xml"><script>x</script></text></text-prop></resource>`),
			found:  "<script>",
			reason: "tag is not allowed in markup",
		},
		{
			name:   "text between resources",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"></resource>garbage<resource label="b" restype=":Thing" id="t2"></resource>`),
			found:  "<resource>",
			reason: `unexpected text "garbage"`,
		},
		{
			name:   "text before the first permission block",
			doc:    wrap(`stray<permissions id="p"><allow group="Creator">V</allow></permissions>`),
			found:  "<permissions>",
			reason: `unexpected text "stray"`,
		},
		{
			name:   "text inside a permission block",
			doc:    wrap(`<permissions id="p"><allow group="Creator">V</allow> oops </permissions>`),
			found:  "</permissions>",
			reason: `unexpected text "oops"`,
		},
		{
			name:   "text inside a resource",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1">junk<integer-prop name=":hasInteger"><integer>1</integer></integer-prop></resource>`),
			found:  "<integer-prop>",
			reason: `unexpected text "junk"`,
		},
		{
			name:   "text inside a property block",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><integer-prop name=":hasInteger"><integer>1</integer>2</integer-prop></resource>`),
			found:  "</integer-prop>",
			reason: `unexpected text "2"`,
		},
		{
			name:   "integer that is not a number",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><integer-prop name=":hasInteger"><integer>twelve</integer></integer-prop></resource>`),
			found:  "<integer>",
			reason: `invalid integer "twelve"`,
		},
		{
			name:   "integer with a fraction",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><integer-prop name=":hasInteger"><integer>1.5</integer></integer-prop></resource>`),
			found:  "<integer>",
			reason: `invalid integer "1.5"`,
		},
		{
			name:   "boolean outside the lexical space",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><boolean-prop name=":hasFlag"><boolean>yes</boolean></boolean-prop></resource>`),
			found:  "<boolean>",
			reason: `invalid boolean "yes", expected true, false, 1 or 0`,
		},
		{
			name:   "decimal that is not a number",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><decimal-prop name=":hasDecimal"><decimal>1,5</decimal></decimal-prop></resource>`),
			found:  "<decimal>",
			reason: `invalid decimal "1,5"`,
		},
		{
			name:   "relative uri",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><uri-prop name=":hasUri"><uri>example.org/page</uri></uri-prop></resource>`),
			found:  "<uri>",
			reason: `invalid uri "example.org/page", expected an absolute uri`,
		},
		{
			name:   "color without a hash",
			doc:    wrap(`<resource label="a" restype=":Thing" id="t1"><color-prop name=":hasColor"><color>red</color></color-prop></resource>`),
			found:  "<color>",
			reason: `invalid color "red", expected #rrggbb`,
		},
		{
			name:   "document ends early",
			doc:    `<knora default-ontology="anything" shortcode="0001"><resource label="a" restype=":Thing" id="t1">`,
			found:  "end of document",
			reason: "document ended before the root element was closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseString(t, tt.doc)
			require.Error(t, err)
			assert.Nil(t, doc)

			var parseErr *StructuralParseError
			require.True(t, errors.As(err, &parseErr), "unexpected error %v", err)
			assert.Equal(t, tt.found, parseErr.Found)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, parseErr.Reason)
			}
		})
	}
}

func TestParse_TypeAttributeFallback(t *testing.T) {
	doc, err := parseString(t, wrap(`<resource label="a" type=":Thing" id="t1"></resource>`))
	require.NoError(t, err)

	assert.Equal(t, "anything:Thing", doc.Resources[0].Type)
}

func TestParse_ProjectGroups(t *testing.T) {
	doc, err := parseString(t, wrap(`
<permissions id="p">
  <allow group=":members">V</allow>
  <allow group="anything:members">M</allow>
  <allow group="knora-admin:Creator">CR</allow>
</permissions>`))
	require.NoError(t, err)

	assert.Equal(t, []pkgmodel.Allow{
		{Code: "V", Group: "http://rdfh.ch/groups/0001/members"},
		{Code: "M", Group: "http://rdfh.ch/groups/0001/members"},
		{Code: "CR", Group: "knora-admin:Creator"},
	}, doc.Permissions["p"].Allows)
}

func TestParse_UnknownGroupAbortsParse(t *testing.T) {
	doc, err := parseString(t, wrap(`<permissions id="p"><allow group=":editors">V</allow></permissions>`))
	require.Error(t, err)
	assert.Nil(t, doc)

	var groupErr *UnknownGroupError
	require.True(t, errors.As(err, &groupErr))
	assert.Equal(t, ":editors", groupErr.Group)
}

func TestParse_AllValueTypes(t *testing.T) {
	samples := map[pkgmodel.ValueType]string{
		pkgmodel.ValueTypeColor:   "#ff3366",
		pkgmodel.ValueTypeDecimal: "2.71",
		pkgmodel.ValueTypeInteger: "-7",
		pkgmodel.ValueTypeURI:     "https://example.org/a?b=c",
		pkgmodel.ValueTypeBoolean: "0",
	}

	var body strings.Builder
	body.WriteString(`<resource label="all" restype=":Thing" id="all">`)
	for _, vt := range pkgmodel.ValueTypes {
		list := ""
		if vt == pkgmodel.ValueTypeList {
			list = ` list="colors"`
		}
		sample, ok := samples[vt]
		if !ok {
			sample = "v"
		}
		body.WriteString(`<` + vt.PropertyTag() + ` name=":has` + string(vt) + `"` + list + `>`)
		body.WriteString(`<` + vt.ValueTag() + `>` + sample + `</` + vt.ValueTag() + `>`)
		body.WriteString(`</` + vt.PropertyTag() + `>`)
	}
	body.WriteString(`</resource>`)

	doc, err := parseString(t, wrap(body.String()))
	require.NoError(t, err)

	props := doc.Resources[0].Properties
	require.Len(t, props, len(pkgmodel.ValueTypes))
	for i, vt := range pkgmodel.ValueTypes {
		assert.Equal(t, vt, props[i].ValueType)
		assert.Equal(t, "anything:has"+string(vt), props[i].Name)
	}
}
