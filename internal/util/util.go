// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/ksuid"
)

// NewID generates a unique, time ordered id via ksuid
func NewID() string {
	return ksuid.New().String()
}

func EnsureFileFolderHierarchy(path string) error {
	return EnsureFolderHierarchy(filepath.Dir(path))
}

func EnsureFolderHierarchy(path string) error {
	return os.MkdirAll(path, 0755)
}

func ExpandHomePath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("./", path[1:])
		}

		return filepath.Join(home, path[1:])
	}

	return path
}

// ResolvePath expands a leading "~" and makes path relative to base unless
// it is absolute already.
func ResolvePath(base, path string) string {
	path = ExpandHomePath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
