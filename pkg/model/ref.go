// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import "fmt"

// ResolutionTable maps document scoped resource ids to the real identifiers
// assigned by the remote system. Every id is recorded exactly once, right
// after its resource has been created.
type ResolutionTable struct {
	iris  map[string]string
	order []string
}

func NewResolutionTable() *ResolutionTable {
	return &ResolutionTable{
		iris: make(map[string]string),
	}
}

func (t *ResolutionTable) Add(id, iri string) error {
	if _, exists := t.iris[id]; exists {
		return fmt.Errorf("resource %s has already been resolved to %s", id, t.iris[id])
	}
	t.iris[id] = iri
	t.order = append(t.order, id)
	return nil
}

func (t *ResolutionTable) Lookup(id string) (string, bool) {
	iri, ok := t.iris[id]
	return iri, ok
}

func (t *ResolutionTable) Len() int {
	return len(t.order)
}

// Mapping is a single resolved entry, used for reporting.
type Mapping struct {
	ID  string `json:"id" yaml:"id"`
	IRI string `json:"iri" yaml:"iri"`
}

// Entries returns the recorded mappings in creation order.
func (t *ResolutionTable) Entries() []Mapping {
	entries := make([]Mapping, 0, len(t.order))
	for _, id := range t.order {
		entries = append(entries, Mapping{ID: id, IRI: t.iris[id]})
	}
	return entries
}
