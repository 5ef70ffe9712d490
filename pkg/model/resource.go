// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

// Resource is a single resource block of an upload document. It is created
// once by the parser and never mutated afterwards; the real identifier
// assigned by the remote system lives in a ResolutionTable instead.
type Resource struct {
	// Document scoped id, only meaningful inside the input document
	ID    string
	Label string
	// Ontology qualified class name, e.g. "anything:Thing"
	Type string
	// Id of a permission set declared in the document, empty for none
	Permissions string
	// Image file name relative to the image directory, empty for none
	Image      string
	Properties []Property
}

type Property struct {
	// Ontology qualified property name, e.g. "anything:hasText"
	Name      string
	ValueType ValueType
	// Document order is kept, it becomes the list order on the wire
	Values []Value
}

// References returns the ids of all resources this resource points at, either
// through pointer values or through references embedded in markup. Ids are
// returned in document order without duplicates.
func (r *Resource) References() []string {
	var refs []string
	seen := make(map[string]struct{})

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		refs = append(refs, id)
	}

	for _, prop := range r.Properties {
		for _, value := range prop.Values {
			if prop.ValueType == ValueTypeResptr {
				add(value.Content)
				continue
			}
			for _, ref := range value.Refs {
				add(ref)
			}
		}
	}

	return refs
}

// HasImage reports whether the resource carries an image that has to be
// uploaded before the resource itself is created.
func (r *Resource) HasImage() bool {
	return r.Image != ""
}
