// Package domain contains the core domain models of the dependency manager.
package domain

// SelfType is the backend discriminator of the project's own crate.
const SelfType = "self"

// Remote identifies where a crate's contents come from.
// Two remotes are equal when both the backend type and the location match.
type Remote struct {
	Type     string
	Location string
}

// String returns the remote in "type:location" form.
func (r Remote) String() string {
	if r.Location == "" {
		return r.Type
	}
	return r.Type + ":" + r.Location
}

// Version identifies an exact snapshot of a crate, e.g. a commit id.
// The zero Version means the crate is not locked yet.
type Version struct {
	Type string
	ID   string
}

// IsZero reports whether v is the zero Version.
func (v Version) IsZero() bool {
	return v == Version{}
}

// String returns the version identifier.
func (v Version) String() string {
	if v.IsZero() {
		return "<unlocked>"
	}
	if v.ID == "" {
		return v.Type
	}
	return v.ID
}

// Short returns an abbreviated identifier suitable for terminal output.
func (v Version) Short() string {
	if len(v.ID) > 12 {
		return v.ID[:12]
	}
	return v.String()
}

var (
	// SelfRemote is the sentinel remote of the self crate.
	SelfRemote = Remote{Type: SelfType}

	// SelfVersion is the sentinel version of the self crate.
	SelfVersion = Version{Type: SelfType}
)

// DepSpec is a backend-specific constraint describing acceptable versions of a crate.
type DepSpec interface {
	// Type returns the backend discriminator the spec belongs to.
	Type() string

	// Join returns the tightest spec satisfying both inputs.
	// It reports false when the backends differ or the combination is unsatisfiable.
	Join(other DepSpec) (DepSpec, bool)

	// String returns a human readable form used in conflict reports.
	String() string
}

// CrateStatus describes the on-disk state of a crate checkout.
type CrateStatus struct {
	// Version is the currently checked-out version, zero when not present.
	Version Version
	// Present reports whether a checkout exists at all.
	Present bool
	// Dirty reports uncommitted changes in the working tree.
	Dirty bool
}
