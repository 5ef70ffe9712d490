// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package parser

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

const (
	tagRoot        = "knora"
	tagPermissions = "permissions"
	tagAllow       = "allow"
	tagResource    = "resource"
	tagImage       = "image"
)

// ParseFile parses the upload document at path in a single pass.
func ParseFile(path string, groups *GroupResolver) (*pkgmodel.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	//nolint:errcheck
	defer f.Close()

	return Parse(f, groups)
}

// Parse reads an upload document from r. The whole run is aborted on the first
// grammar violation; no partial document is returned.
func Parse(r io.Reader, groups *GroupResolver) (*pkgmodel.Document, error) {
	p := &parser{
		cursor: NewCursor(r),
		groups: groups,
		doc: &pkgmodel.Document{
			Permissions: make(map[string]pkgmodel.PermissionSet),
		},
		ids: make(map[string]struct{}),
	}

	if err := p.parseDocument(); err != nil {
		return nil, err
	}

	slog.Debug("Parsed document",
		"resources", len(p.doc.Resources),
		"permissionSets", len(p.doc.Permissions),
		"defaultOntology", p.doc.DefaultOntology,
		"shortcode", p.doc.Shortcode)

	return p.doc, nil
}

type parser struct {
	cursor *Cursor
	groups *GroupResolver
	doc    *pkgmodel.Document
	ids    map[string]struct{}
}

func (p *parser) parseDocument() error {
	root, err := p.cursor.Next()
	if err != nil {
		return err
	}
	if root.Kind != Enter || root.Name != tagRoot {
		return unexpected(root, "", "<"+tagRoot+">")
	}

	if p.doc.DefaultOntology, err = requiredAttr(root, "default-ontology"); err != nil {
		return err
	}
	if p.doc.Shortcode, err = requiredAttr(root, "shortcode"); err != nil {
		return err
	}
	p.groups.UseProject(p.doc.Shortcode)

	inResources := false
	for {
		ev, err := p.nextElement()
		if err != nil {
			return err
		}

		switch {
		case ev.Kind == Enter && ev.Name == tagPermissions && !inResources:
			ps, err := p.parsePermissionSet(ev)
			if err != nil {
				return err
			}
			if _, exists := p.doc.Permissions[ps.ID]; exists {
				return invalid(ev, fmt.Sprintf("duplicate permission set id %q", ps.ID))
			}
			p.doc.Permissions[ps.ID] = ps
		case ev.Kind == Enter && ev.Name == tagResource:
			inResources = true
			res, err := p.parseResource(ev)
			if err != nil {
				return err
			}
			p.doc.Resources = append(p.doc.Resources, res)
		case ev.Kind == Leave && ev.Name == tagRoot:
			return nil
		case inResources:
			return unexpected(ev, "permission blocks must precede all resources", "<"+tagResource+">", "</"+tagRoot+">")
		default:
			return unexpected(ev, "", "<"+tagPermissions+">", "<"+tagResource+">", "</"+tagRoot+">")
		}
	}
}

func (p *parser) parsePermissionSet(start Event) (pkgmodel.PermissionSet, error) {
	id, err := requiredAttr(start, "id")
	if err != nil {
		return pkgmodel.PermissionSet{}, err
	}
	ps := pkgmodel.PermissionSet{ID: id}

	for {
		ev, err := p.nextElement()
		if err != nil {
			return pkgmodel.PermissionSet{}, err
		}

		switch {
		case ev.Kind == Enter && ev.Name == tagAllow:
			allow, err := p.parseAllow(ev)
			if err != nil {
				return pkgmodel.PermissionSet{}, err
			}
			ps.Allows = append(ps.Allows, allow)
		case ev.Kind == Leave && ev.Name == tagPermissions:
			return ps, nil
		default:
			return pkgmodel.PermissionSet{}, unexpected(ev, "", "<"+tagAllow+">", "</"+tagPermissions+">")
		}
	}
}

func (p *parser) parseAllow(start Event) (pkgmodel.Allow, error) {
	token, err := requiredAttr(start, "group")
	if err != nil {
		return pkgmodel.Allow{}, err
	}
	group, err := p.groups.Resolve(token)
	if err != nil {
		return pkgmodel.Allow{}, err
	}

	code, err := p.leafText(start)
	if err != nil {
		return pkgmodel.Allow{}, err
	}
	if code == "" {
		return pkgmodel.Allow{}, invalid(start, "permission code must not be empty")
	}

	return pkgmodel.Allow{Code: code, Group: group}, nil
}

func (p *parser) parseResource(start Event) (pkgmodel.Resource, error) {
	var res pkgmodel.Resource
	var err error

	if res.ID, err = requiredAttr(start, "id"); err != nil {
		return res, err
	}
	if _, exists := p.ids[res.ID]; exists {
		return res, invalid(start, fmt.Sprintf("duplicate resource id %q", res.ID))
	}
	p.ids[res.ID] = struct{}{}

	if res.Label, err = requiredAttr(start, "label"); err != nil {
		return res, err
	}

	restype, ok := start.Attr("restype")
	if !ok {
		if restype, err = requiredAttr(start, "type"); err != nil {
			return res, err
		}
	}
	res.Type = pkgmodel.QualifyName(restype, p.doc.DefaultOntology)
	res.Permissions, _ = start.Attr("permissions")

	for {
		ev, err := p.nextElement()
		if err != nil {
			return res, err
		}

		if ev.Kind == Leave && ev.Name == tagResource {
			return res, nil
		}

		if ev.Kind == Enter && ev.Name == tagImage && res.Image == "" && len(res.Properties) == 0 {
			if res.Image, err = p.leafText(ev); err != nil {
				return res, err
			}
			if res.Image == "" {
				return res, invalid(ev, "image file name must not be empty")
			}
			continue
		}

		if ev.Kind == Enter {
			if vt, ok := pkgmodel.ValueTypeFromPropertyTag(ev.Name); ok {
				prop, err := p.parseProperty(ev, vt)
				if err != nil {
					return res, err
				}
				res.Properties = append(res.Properties, prop)
				continue
			}
			return res, unexpected(ev, "a resource may contain an image followed by property blocks")
		}

		return res, unexpected(ev, "", "</"+tagResource+">")
	}
}

func (p *parser) parseProperty(start Event, vt pkgmodel.ValueType) (pkgmodel.Property, error) {
	name, err := requiredAttr(start, "name")
	if err != nil {
		return pkgmodel.Property{}, err
	}
	listName, _ := start.Attr("list")
	if vt == pkgmodel.ValueTypeList && listName == "" {
		return pkgmodel.Property{}, invalid(start, "list properties require a list attribute")
	}

	prop := pkgmodel.Property{
		Name:      pkgmodel.QualifyName(name, p.doc.DefaultOntology),
		ValueType: vt,
	}

	for {
		ev, err := p.nextElement()
		if err != nil {
			return prop, err
		}

		switch {
		case ev.Kind == Enter && ev.Name == vt.ValueTag():
			value, err := p.parseValue(ev, vt, listName)
			if err != nil {
				return prop, err
			}
			prop.Values = append(prop.Values, value)
		case ev.Kind == Leave && ev.Name == start.Name:
			if len(prop.Values) == 0 {
				return prop, invalid(ev, fmt.Sprintf("property %s has no values", prop.Name))
			}
			return prop, nil
		case ev.Kind == Enter:
			return prop, unexpected(ev, fmt.Sprintf("%s may only contain <%s> values", start.Tag(), vt.ValueTag()), "<"+vt.ValueTag()+">")
		default:
			return prop, unexpected(ev, "", "</"+start.Name+">")
		}
	}
}

// nextElement returns the next event inside an element that holds only other
// elements. Character data other than whitespace is rejected there.
func (p *parser) nextElement() (Event, error) {
	ev, err := p.cursor.Next()
	if err != nil {
		return ev, err
	}
	if text := trim(ev.Text); text != "" {
		return ev, invalid(ev, fmt.Sprintf("unexpected text %q", text))
	}
	return ev, nil
}

// leafText consumes an element that may only contain text and returns the
// trimmed text.
func (p *parser) leafText(start Event) (string, error) {
	ev, err := p.cursor.Next()
	if err != nil {
		return "", err
	}
	if ev.Kind == Enter {
		return "", unexpected(ev, start.Tag()+" may not contain other tags", "</"+start.Name+">")
	}
	if ev.Name != start.Name {
		return "", unexpected(ev, "", "</"+start.Name+">")
	}
	return trim(ev.Text), nil
}

func requiredAttr(ev Event, name string) (string, error) {
	v, ok := ev.Attr(name)
	if !ok || v == "" {
		return "", invalid(ev, fmt.Sprintf("missing required attribute %q", name))
	}
	return v, nil
}
