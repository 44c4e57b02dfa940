package domain

import (
	"maps"
	"slices"
)

// Lockfile is the decoded form of .deps.lock, keyed by crate name.
type Lockfile struct {
	Entries map[string]LockEntry
}

// LockEntry is one crate's record in the lockfile.
type LockEntry struct {
	// Type is the backend discriminator; empty for the self crate.
	Type string
	// Fields holds the backend-specific fields such as url and commit.
	Fields Document
	// Dependencies maps local dependency names to crate names.
	Dependencies map[string]string
}

// NewLockfile returns an empty lockfile.
func NewLockfile() *Lockfile {
	return &Lockfile{Entries: make(map[string]LockEntry)}
}

// Names returns the crate names in sorted order. The self crate sorts first.
func (l *Lockfile) Names() []string {
	return slices.Sorted(maps.Keys(l.Entries))
}
