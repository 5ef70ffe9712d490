// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"encoding/json"
	"fmt"
)

// Payload is the resolved value data of a resource keyed by property name.
// Each entry is either a single item or, for two or more values, an ordered
// []any of items. An item is a plain string or a ValueObject.
type Payload map[string]any

// ValueObject is used instead of a plain string whenever a value carries a
// comment or a permission set.
type ValueObject struct {
	Value       string
	Comment     *string
	Permissions fmt.Stringer
}

func (v ValueObject) MarshalJSON() ([]byte, error) {
	obj := map[string]string{"value": v.Value}
	if v.Comment != nil {
		obj["comment"] = *v.Comment
	}
	if v.Permissions != nil {
		obj["permissions"] = v.Permissions.String()
	}
	return json.Marshal(obj)
}

// Items returns the items of a payload entry as a list, regardless of whether
// it was collapsed to a single item.
func (p Payload) Items(property string) []any {
	entry, ok := p[property]
	if !ok {
		return nil
	}
	if list, ok := entry.([]any); ok {
		return list
	}
	return []any{entry}
}
