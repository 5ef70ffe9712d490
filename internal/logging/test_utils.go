// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"log/slog"
	"strings"
	"sync"
)

// TestLogCapture is a thread-safe log writer for test assertions
type TestLogCapture struct {
	mu      sync.RWMutex
	Entries []string
}

func NewTestLogCapture() *TestLogCapture {
	return &TestLogCapture{
		Entries: make([]string, 0),
	}
}

// Install makes a text handler writing into the capture the default logger
// and returns a function restoring the previous default.
func (c *TestLogCapture) Install(level slog.Level) (restore func()) {
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(c, &slog.HandlerOptions{Level: level})))
	return func() { slog.SetDefault(previous) }
}

func (c *TestLogCapture) Write(p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Entries = append(c.Entries, string(p))
	return len(p), nil
}

// ContainsAll returns true if all substrings are found in the log entries
func (c *TestLogCapture) ContainsAll(substrs ...string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, substr := range substrs {
		found := false
		for _, entry := range c.Entries {
			if strings.Contains(entry, substr) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// GetEntries returns a copy of all log entries
func (c *TestLogCapture) GetEntries() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := make([]string, len(c.Entries))
	copy(entries, c.Entries)
	return entries
}
