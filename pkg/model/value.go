// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"fmt"
	"strings"
)

type ValueType string

const (
	ValueTypeText      ValueType = "text"
	ValueTypeColor     ValueType = "color"
	ValueTypeDate      ValueType = "date"
	ValueTypeDecimal   ValueType = "decimal"
	ValueTypeGeometry  ValueType = "geometry"
	ValueTypeGeoname   ValueType = "geoname"
	ValueTypeList      ValueType = "list"
	ValueTypeIconclass ValueType = "iconclass"
	ValueTypeInteger   ValueType = "integer"
	ValueTypeInterval  ValueType = "interval"
	ValueTypePeriod    ValueType = "period"
	ValueTypeResptr    ValueType = "resptr" // pointer to another resource
	ValueTypeTime      ValueType = "time"
	ValueTypeURI       ValueType = "uri"
	ValueTypeBoolean   ValueType = "boolean"
)

const propertyTagSuffix = "-prop"

var ValueTypes = []ValueType{
	ValueTypeText,
	ValueTypeColor,
	ValueTypeDate,
	ValueTypeDecimal,
	ValueTypeGeometry,
	ValueTypeGeoname,
	ValueTypeList,
	ValueTypeIconclass,
	ValueTypeInteger,
	ValueTypeInterval,
	ValueTypePeriod,
	ValueTypeResptr,
	ValueTypeTime,
	ValueTypeURI,
	ValueTypeBoolean,
}

// ValueTypeFromPropertyTag maps a property block tag such as "text-prop" to
// its value type.
func ValueTypeFromPropertyTag(tag string) (ValueType, bool) {
	name, ok := strings.CutSuffix(tag, propertyTagSuffix)
	if !ok {
		return "", false
	}
	for _, vt := range ValueTypes {
		if string(vt) == name {
			return vt, true
		}
	}
	return "", false
}

// PropertyTag is the tag of the property block holding values of this type.
func (vt ValueType) PropertyTag() string {
	return string(vt) + propertyTagSuffix
}

// ValueTag is the tag every value element of this type must use.
func (vt ValueType) ValueTag() string {
	return string(vt)
}

func (vt ValueType) IsPointer() bool {
	return vt == ValueTypeResptr
}

// Value is a single value element. Content is either a plain scalar, a
// "listname:label" pair for list values, or an opaque markup blob when Markup
// is set.
type Value struct {
	Content string
	Markup  bool
	Comment *string
	// Id of a permission set declared in the document, empty for none
	Permissions string
	// Resource ids referenced from inside the markup blob
	Refs []string
}

func (v *Value) HasComment() bool {
	return v.Comment != nil
}

func (v *Value) HasPermissions() bool {
	return v.Permissions != ""
}

// IsBare reports whether the value serializes as a plain scalar.
func (v *Value) IsBare() bool {
	return !v.HasComment() && !v.HasPermissions()
}

// ListValue joins a list name and a node label the way list values are sent.
func ListValue(listName, label string) string {
	return fmt.Sprintf("%s:%s", listName, label)
}
