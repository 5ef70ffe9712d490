// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package resolver

import (
	"fmt"
	"log/slog"

	"github.com/platform-engineering-labs/xmlupload/internal/parser"
	"github.com/platform-engineering-labs/xmlupload/internal/permission"
	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

// Resolver turns the values of a parsed resource into the payload sent to the
// remote system, replacing document scoped ids with real identifiers.
type Resolver struct {
	Table       *pkgmodel.ResolutionTable
	Permissions map[string]*permission.Set
}

func New(table *pkgmodel.ResolutionTable, permissions map[string]*permission.Set) *Resolver {
	return &Resolver{
		Table:       table,
		Permissions: permissions,
	}
}

// Resolve builds the payload of res. All resources res references must have
// been created already, which the dependency order guarantees.
func (r *Resolver) Resolve(res pkgmodel.Resource) (pkgmodel.Payload, error) {
	payload := make(pkgmodel.Payload, len(res.Properties))

	for _, prop := range res.Properties {
		items := make([]any, 0, len(prop.Values))
		for _, value := range prop.Values {
			content, err := r.resolveContent(res.ID, prop, value)
			if err != nil {
				return nil, err
			}
			items = append(items, r.item(content, value))
		}

		// a repeated property element adds to the values already collected
		if _, ok := payload[prop.Name]; ok {
			items = append(payload.Items(prop.Name), items...)
		}

		if len(items) == 1 {
			payload[prop.Name] = items[0]
		} else {
			payload[prop.Name] = items
		}
	}

	return payload, nil
}

// PermissionSet returns the permission object for a permission set id, or nil
// if the id is empty or unknown.
func (r *Resolver) PermissionSet(id string) *permission.Set {
	if id == "" {
		return nil
	}
	set, ok := r.Permissions[id]
	if !ok {
		slog.Warn("Unknown permission set, sending no permissions", "permissions", id)
		return nil
	}
	return set
}

func (r *Resolver) resolveContent(resourceID string, prop pkgmodel.Property, value pkgmodel.Value) (string, error) {
	switch {
	case prop.ValueType.IsPointer():
		iri, ok := r.Table.Lookup(value.Content)
		if !ok {
			// the raw id is sent unchanged; the remote side rejects or
			// misinterprets it
			slog.Debug("Pointer target is not resolved, passing the raw value through",
				"resource", resourceID, "property", prop.Name, "target", value.Content)
			return value.Content, nil
		}
		return iri, nil
	case value.Markup:
		return r.substitute(resourceID, prop.Name, value.Content)
	default:
		return value.Content, nil
	}
}

// substitute replaces every embedded reference token with the identifier of
// the referenced resource, leaving all other bytes of the blob untouched.
func (r *Resolver) substitute(resourceID, property, blob string) (string, error) {
	var missing string
	out := parser.ReferencePattern.ReplaceAllStringFunc(blob, func(token string) string {
		id := parser.ReferencePattern.FindStringSubmatch(token)[1]
		iri, ok := r.Table.Lookup(id)
		if !ok {
			if missing == "" {
				missing = id
			}
			return token
		}
		return iri
	})

	if missing != "" {
		return "", fmt.Errorf("resource %s: markup of %s references %s which has not been created", resourceID, property, missing)
	}
	return out, nil
}

func (r *Resolver) item(content string, value pkgmodel.Value) any {
	if value.IsBare() {
		return content
	}

	obj := pkgmodel.ValueObject{
		Value:   content,
		Comment: value.Comment,
	}
	if set := r.PermissionSet(value.Permissions); set != nil {
		obj.Permissions = set
	}
	return obj
}
