// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package parser

import (
	"regexp"
	"slices"
	"strings"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

const encodingMarkup = "xml"

var richtextTags = []string{
	"p", "em", "strong", "u", "sub", "sup", "strike", "a",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"ol", "ul", "li", "tbody", "table", "tr", "td",
	"br", "hr", "pre", "cite", "blockquote", "code",
}

// ReferencePattern matches resource references embedded in markup, e.g.
// "IRI:book_1:IRI". The first group is the document scoped resource id.
var ReferencePattern = regexp.MustCompile(`IRI:([\p{L}\p{N}_.\-]+):IRI`)

func (p *parser) parseValue(start Event, vt pkgmodel.ValueType, listName string) (pkgmodel.Value, error) {
	var value pkgmodel.Value

	if comment, ok := start.Attr("comment"); ok {
		value.Comment = &comment
	}
	value.Permissions, _ = start.Attr("permissions")

	encoding, _ := start.Attr("encoding")
	if encoding == encodingMarkup {
		if vt != pkgmodel.ValueTypeText {
			return value, invalid(start, "only text values may be encoded as markup")
		}
		blob, err := p.parseMarkup(start)
		if err != nil {
			return value, err
		}
		value.Markup = true
		value.Content = blob
		value.Refs = extractReferences(blob)
		return value, nil
	}

	ev, err := p.cursor.Next()
	if err != nil {
		return value, err
	}
	if ev.Kind == Enter {
		return value, unexpected(ev, "value elements may contain no other tags", "</"+start.Name+">")
	}
	if ev.Name != start.Name {
		return value, unexpected(ev, "", "</"+start.Name+">")
	}

	switch vt {
	case pkgmodel.ValueTypeText:
		value.Content = ev.Text
	case pkgmodel.ValueTypeList:
		value.Content = pkgmodel.ListValue(listName, trim(ev.Text))
	default:
		value.Content = trim(ev.Text)
		if err := checkLexical(vt, value.Content); err != nil {
			return value, invalid(start, err.Error())
		}
	}

	return value, nil
}

// parseMarkup walks the rich-text subtree of a markup value, checking every
// nested tag against the allow-list, and returns the subtree verbatim.
func (p *parser) parseMarkup(start Event) (string, error) {
	if err := p.cursor.BeginCapture(); err != nil {
		return "", invalid(start, err.Error())
	}

	var open []string
	for {
		ev, err := p.cursor.Next()
		if err != nil {
			return "", err
		}

		if ev.Kind == Enter {
			if !slices.Contains(richtextTags, ev.Name) {
				return "", unexpected(ev, "tag is not allowed in markup")
			}
			open = append(open, ev.Name)
			continue
		}

		if len(open) > 0 {
			top := open[len(open)-1]
			if ev.Name != top {
				return "", unexpected(ev, "", "</"+top+">")
			}
			open = open[:len(open)-1]
			continue
		}

		if ev.Name != start.Name {
			return "", unexpected(ev, "", "</"+start.Name+">")
		}

		blob, err := p.cursor.EndCapture(ev)
		if err != nil {
			return "", invalid(ev, err.Error())
		}
		return blob, nil
	}
}

func extractReferences(blob string) []string {
	var refs []string
	for _, m := range ReferencePattern.FindAllStringSubmatch(blob, -1) {
		if !slices.Contains(refs, m[1]) {
			refs = append(refs, m[1])
		}
	}
	return refs
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
