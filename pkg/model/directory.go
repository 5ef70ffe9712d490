// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

type Project struct {
	ID        string
	Shortname string
	Shortcode string
}

type Group struct {
	ID   string
	Name string
	// Id of the owning project
	Project string
}

// Directory is a snapshot of all projects and groups known to the server.
type Directory struct {
	Projects []Project
	Groups   []Group
}

func (d *Directory) ProjectByShortcode(shortcode string) (Project, bool) {
	for _, p := range d.Projects {
		if p.Shortcode == shortcode {
			return p, true
		}
	}
	return Project{}, false
}
