// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/sjson"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

const (
	knoraAPIPrefix  = "knora-api"
	knoraAPIIRI     = "http://api.knora.org/ontology/knora-api/v2#"
	rdfsIRI         = "http://www.w3.org/2000/01/rdf-schema#"
	xsdIRI          = "http://www.w3.org/2001/XMLSchema#"
	standardMapping = "http://rdfh.ch/standoff/mappings/StandardMapping"
)

type literalKind int

const (
	literalString literalKind = iota
	literalInteger
	literalBoolean
	literalTyped
	literalIRI
)

type valueEncoding struct {
	class    string
	property string
	kind     literalKind
	// xsd datatype of typed literals
	datatype string
}

var valueEncodings = map[pkgmodel.ValueType]valueEncoding{
	pkgmodel.ValueTypeText:      {class: "TextValue", property: "valueAsString"},
	pkgmodel.ValueTypeColor:     {class: "ColorValue", property: "colorValueAsColor"},
	pkgmodel.ValueTypeDate:      {class: "DateValue", property: "valueAsString"},
	pkgmodel.ValueTypeDecimal:   {class: "DecimalValue", property: "decimalValueAsDecimal", kind: literalTyped, datatype: "xsd:decimal"},
	pkgmodel.ValueTypeGeometry:  {class: "GeomValue", property: "geometryValueAsGeometry"},
	pkgmodel.ValueTypeGeoname:   {class: "GeonameValue", property: "geonameValueAsGeonameCode"},
	pkgmodel.ValueTypeList:      {class: "ListValue", property: "listValueAsListNode", kind: literalIRI},
	pkgmodel.ValueTypeIconclass: {class: "TextValue", property: "valueAsString"},
	pkgmodel.ValueTypeInteger:   {class: "IntValue", property: "intValueAsInt", kind: literalInteger},
	pkgmodel.ValueTypeInterval:  {class: "IntervalValue", property: "valueAsString"},
	pkgmodel.ValueTypePeriod:    {class: "DateValue", property: "valueAsString"},
	pkgmodel.ValueTypeResptr:    {class: "LinkValue", property: "linkValueHasTargetIri", kind: literalIRI},
	pkgmodel.ValueTypeTime:      {class: "TimeValue", property: "timeValueAsTimeStamp", kind: literalTyped, datatype: "xsd:dateTimeStamp"},
	pkgmodel.ValueTypeURI:       {class: "UriValue", property: "uriValueAsUri", kind: literalTyped, datatype: "xsd:anyURI"},
	pkgmodel.ValueTypeBoolean:   {class: "BooleanValue", property: "booleanValueAsBoolean", kind: literalBoolean},
}

// encodeResource assembles the JSON-LD body of a create request.
func encodeResource(req CreateRequest) ([]byte, error) {
	body := []byte(`{}`)
	var err error

	set := func(value any, fields ...string) {
		if err != nil {
			return
		}
		components := make([]string, 0, len(fields))
		for _, f := range fields {
			components = append(components, escape(f))
		}
		body, err = sjson.SetBytes(body, strings.Join(components, "."), value)
	}

	set(knoraAPIIRI, "@context", knoraAPIPrefix)
	set(rdfsIRI, "@context", "rdfs")
	set(xsdIRI, "@context", "xsd")
	prefixes := make([]string, 0, len(req.Ontologies))
	for name := range req.Ontologies {
		prefixes = append(prefixes, name)
	}
	sort.Strings(prefixes)
	for _, name := range prefixes {
		set(strings.TrimSuffix(req.Ontologies[name], "#")+"#", "@context", name)
	}

	set(req.ClassIRI, "@type")
	set(req.Resource.Label, "rdfs:label")
	set(req.ProjectIRI, "knora-api:attachedToProject", "@id")
	if req.Permissions != nil {
		set(req.Permissions.String(), "knora-api:hasPermissions")
	}
	if req.StillImage != "" {
		set("knora-api:StillImageFileValue", "knora-api:hasStillImageFileValue", "@type")
		set(req.StillImage, "knora-api:hasStillImageFileValue", "knora-api:fileValueHasFilename")
	}
	if err != nil {
		return nil, err
	}

	next := make(map[string]int)
	for _, prop := range req.Resource.Properties {
		items := req.Values.Items(prop.Name)
		key := prop.Name
		if prop.ValueType.IsPointer() {
			key += "Value"
		}

		for _, value := range prop.Values {
			i := next[prop.Name]
			next[prop.Name]++
			if i >= len(items) {
				return nil, fmt.Errorf("property %s has %d resolved values, expected more", prop.Name, len(items))
			}

			path := fmt.Sprintf("%s.%d", escape(key), i)
			if body, err = encodeValue(body, path, prop.ValueType, value.Markup, items[i]); err != nil {
				return nil, fmt.Errorf("failed to encode %s: %w", prop.Name, err)
			}
		}
	}

	return body, nil
}

func encodeValue(body []byte, path string, vt pkgmodel.ValueType, markup bool, item any) ([]byte, error) {
	enc, ok := valueEncodings[vt]
	if !ok {
		return nil, fmt.Errorf("unsupported value type %s", vt)
	}

	var content string
	var comment *string
	var permissions string
	switch v := item.(type) {
	case string:
		content = v
	case pkgmodel.ValueObject:
		content = v.Value
		comment = v.Comment
		if v.Permissions != nil {
			permissions = v.Permissions.String()
		}
	default:
		return nil, fmt.Errorf("unexpected value item %T", item)
	}

	var err error
	set := func(value any, fields ...string) {
		if err != nil {
			return
		}
		components := []string{path}
		for _, f := range fields {
			components = append(components, escape(f))
		}
		body, err = sjson.SetBytes(body, strings.Join(components, "."), value)
	}

	property := knoraAPIPrefix + ":" + enc.property
	set(knoraAPIPrefix+":"+enc.class, "@type")

	switch {
	case vt == pkgmodel.ValueTypeText && markup:
		set(content, "knora-api:textValueAsXml")
		set(standardMapping, "knora-api:textValueHasMapping", "@id")
	case enc.kind == literalInteger:
		n, convErr := strconv.ParseInt(content, 10, 64)
		if convErr != nil {
			return nil, fmt.Errorf("invalid integer %q", content)
		}
		set(n, property)
	case enc.kind == literalBoolean:
		b, convErr := strconv.ParseBool(content)
		if convErr != nil {
			return nil, fmt.Errorf("invalid boolean %q", content)
		}
		set(b, property)
	case enc.kind == literalTyped:
		set(enc.datatype, property, "@type")
		set(content, property, "@value")
	case enc.kind == literalIRI:
		set(content, property, "@id")
	default:
		set(content, property)
	}

	if comment != nil {
		set(*comment, "knora-api:valueHasComment")
	}
	if permissions != "" {
		set(permissions, "knora-api:hasPermissions")
	}

	return body, err
}

var pathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "@", `\@`, "#", `\#`, "|", `\|`)

// escape quotes the characters sjson treats as path syntax.
func escape(component string) string {
	return pathEscaper.Replace(component)
}
