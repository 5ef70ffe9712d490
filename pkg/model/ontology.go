// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"fmt"
	"sort"
)

type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("resource type %q is not defined in any ontology of the project", e.Type)
}

// TypeRegistry maps ontology qualified class names to the class IRIs of the
// remote ontology. It is populated once at startup and queried by exact name.
type TypeRegistry struct {
	classes map[string]string
	// ontology name -> ontology IRI
	ontologies map[string]string
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		classes:    make(map[string]string),
		ontologies: make(map[string]string),
	}
}

func (r *TypeRegistry) RegisterOntology(name, ontologyIRI string) {
	r.ontologies[name] = ontologyIRI
}

// Ontologies returns a copy of the known ontology names and their IRIs.
func (r *TypeRegistry) Ontologies() map[string]string {
	out := make(map[string]string, len(r.ontologies))
	for name, iri := range r.ontologies {
		out[name] = iri
	}
	return out
}

func (r *TypeRegistry) Register(name, classIRI string) {
	r.classes[name] = classIRI
}

func (r *TypeRegistry) Lookup(name string) (string, error) {
	iri, ok := r.classes[name]
	if !ok {
		return "", &UnknownTypeError{Type: name}
	}
	return iri, nil
}

func (r *TypeRegistry) Names() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
