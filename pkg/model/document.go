// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import "strings"

// AdminNamespace is applied to names that carry no ontology prefix at all.
const AdminNamespace = "knora-admin"

// SystemGroups are the built-in groups that exist in every project.
var SystemGroups = []string{
	"UnknownUser",
	"KnownUser",
	"ProjectMember",
	"Creator",
	"ProjectAdmin",
	"SystemAdmin",
}

func IsSystemGroup(name string) bool {
	for _, g := range SystemGroups {
		if g == name {
			return true
		}
	}
	return false
}

// Document is everything a single pass over the input produces.
type Document struct {
	DefaultOntology string
	Shortcode       string
	Resources       []Resource
	Permissions     map[string]PermissionSet
}

// PermissionSet is a named, ordered list of grants. Order defines precedence
// for the permission object built from it.
type PermissionSet struct {
	ID     string
	Allows []Allow
}

type Allow struct {
	// Permission code such as "RV", "V", "M", "D" or "CR"
	Code string
	// Resolved group, e.g. "knora-admin:Creator" or "myproject:editors"
	Group string
}

// QualifyName expands a possibly abbreviated ontology name. "onto:Name" is
// kept, ":Name" inherits the default ontology and a bare "Name" is placed in
// the administrative namespace.
func QualifyName(name, defaultOntology string) string {
	prefix, local, found := strings.Cut(name, ":")
	if !found {
		return AdminNamespace + ":" + name
	}
	if prefix == "" {
		return defaultOntology + ":" + local
	}
	return name
}
