package domain

import (
	"maps"
	"slices"
)

// DefaultBackend is the backend used by descriptors that omit a type.
const DefaultBackend = "git"

// Declarations is the parsed content of a crate's declaration file.
type Declarations struct {
	// Dependencies maps local dependency names to backend descriptors.
	Dependencies map[string]Document
	// Gen maps generator names to their settings.
	Gen map[string]Document
}

// DependencyNames returns the declared dependency names in sorted order.
func (d *Declarations) DependencyNames() []string {
	if d == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(d.Dependencies))
}

// GeneratorNames returns the configured generator names in sorted order.
func (d *Declarations) GeneratorNames() []string {
	if d == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(d.Gen))
}

// RawDeclarations is an undecoded declaration file as produced by a backend.
// An empty FileName means the crate has no declaration file.
type RawDeclarations struct {
	FileName string
	Data     []byte
}

// Empty reports whether no declaration file was found.
func (r RawDeclarations) Empty() bool {
	return r.FileName == ""
}
