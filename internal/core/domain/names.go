package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ValidateCrateName checks that name is usable as a crate path relative to the project root.
// The empty name is reserved for the self crate and is accepted.
func ValidateCrateName(name string) error {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, `\:`) {
		return zerr.With(ErrInvalidCrateName, "crate", name)
	}
	for seg := range strings.SplitSeq(name, "/") {
		if seg == "" || seg == "." || seg == ".." || strings.TrimSpace(seg) != seg {
			return zerr.With(ErrInvalidCrateName, "crate", name)
		}
	}
	return nil
}

// ValidateDependencyName checks a local dependency name.
func ValidateDependencyName(name string) error {
	if name == "" || strings.Contains(name, ":") || strings.TrimSpace(name) != name {
		return zerr.With(ErrInvalidDependencyName, "dependency", name)
	}
	return nil
}

// EdgeRef addresses one dependency edge as "crate:dependency".
type EdgeRef struct {
	Crate      string
	Dependency string
}

// String returns the reference in "crate:dependency" form.
func (r EdgeRef) String() string {
	return r.Crate + ":" + r.Dependency
}

// ParseEdgeRef parses "crate:dependency". A reference without a colon names a dependency of the self crate.
// The crate part is a path and is returned as written.
func ParseEdgeRef(s string) (EdgeRef, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		if err := ValidateDependencyName(s); err != nil {
			return EdgeRef{}, zerr.With(ErrInvalidEdgeRef, "ref", s)
		}
		return EdgeRef{Dependency: s}, nil
	}
	ref := EdgeRef{Crate: s[:i], Dependency: s[i+1:]}
	if err := ValidateDependencyName(ref.Dependency); err != nil {
		return EdgeRef{}, zerr.With(ErrInvalidEdgeRef, "ref", s)
	}
	return ref, nil
}
