// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package parser

import (
	"log/slog"
	"strings"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

// GroupResolver maps group tokens of permission blocks to group identifiers
// using a snapshot of the project and group directory.
type GroupResolver struct {
	directory *pkgmodel.Directory
	// "projectShortname:groupName" -> group id
	groups      map[string]string
	projectName string
}

func NewGroupResolver(directory *pkgmodel.Directory) *GroupResolver {
	shortnames := make(map[string]string, len(directory.Projects))
	for _, p := range directory.Projects {
		shortnames[p.ID] = p.Shortname
	}

	groups := make(map[string]string, len(directory.Groups))
	for _, g := range directory.Groups {
		shortname, ok := shortnames[g.Project]
		if !ok {
			slog.Debug("Skipping group of unknown project", "group", g.Name, "project", g.Project)
			continue
		}
		groups[shortname+":"+g.Name] = g.ID
	}

	return &GroupResolver{
		directory: directory,
		groups:    groups,
	}
}

// UseProject makes the project with the given shortcode the current project,
// against which tokens with an empty namespace are resolved.
func (r *GroupResolver) UseProject(shortcode string) {
	r.projectName = ""
	if p, ok := r.directory.ProjectByShortcode(shortcode); ok {
		r.projectName = p.Shortname
	}
}

func (r *GroupResolver) ProjectName() string {
	return r.projectName
}

// Resolve turns a group token into a group identifier:
//
//	knora-admin:Creator  system group, kept as is
//	myproject:editors    looked up in the directory
//	:editors             looked up in the directory for the current project
//	Creator              system group, placed in the administrative namespace
func (r *GroupResolver) Resolve(token string) (string, error) {
	namespace, name, qualified := strings.Cut(token, ":")

	if !qualified {
		if pkgmodel.IsSystemGroup(token) {
			return pkgmodel.AdminNamespace + ":" + token, nil
		}
		return "", &UnknownGroupError{Group: token, Reason: "not a system group"}
	}

	if namespace == "" {
		if r.projectName == "" {
			return "", &UnknownGroupError{Group: token, Reason: "no current project, the document shortcode does not match any project"}
		}
		return r.lookup(r.projectName+":"+name, token)
	}

	if namespace == pkgmodel.AdminNamespace && pkgmodel.IsSystemGroup(name) {
		return token, nil
	}

	return r.lookup(token, token)
}

func (r *GroupResolver) lookup(key, token string) (string, error) {
	id, ok := r.groups[key]
	if !ok {
		return "", &UnknownGroupError{Group: token, Reason: "cannot find project or group " + key}
	}
	return id, nil
}
