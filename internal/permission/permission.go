// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package permission

import (
	"encoding/json"
	"strings"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

// Set is the permission object sent along with resources and values. It
// groups grants by permission code, keeping the order in which codes and
// groups first appeared.
type Set struct {
	codes  []string
	groups map[string][]string
}

func New() *Set {
	return &Set{
		groups: make(map[string][]string),
	}
}

// FromPermissionSet builds the permission object of a parsed permission set.
func FromPermissionSet(ps pkgmodel.PermissionSet) *Set {
	s := New()
	for _, allow := range ps.Allows {
		s.Add(allow.Code, allow.Group)
	}
	return s
}

// Build resolves every parsed permission set into its permission object.
func Build(sets map[string]pkgmodel.PermissionSet) map[string]*Set {
	built := make(map[string]*Set, len(sets))
	for id, ps := range sets {
		built[id] = FromPermissionSet(ps)
	}
	return built
}

func (s *Set) Add(code, group string) *Set {
	groups, ok := s.groups[code]
	if !ok {
		s.codes = append(s.codes, code)
	}
	for _, g := range groups {
		if g == group {
			return s
		}
	}
	s.groups[code] = append(groups, group)
	return s
}

func (s *Set) Empty() bool {
	return len(s.codes) == 0
}

// String renders the wire form, e.g. "CR knora-admin:Creator|V knora-admin:KnownUser".
func (s *Set) String() string {
	parts := make([]string, 0, len(s.codes))
	for _, code := range s.codes {
		parts = append(parts, code+" "+strings.Join(s.groups[code], ","))
	}
	return strings.Join(parts, "|")
}

func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
