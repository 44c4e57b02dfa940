package git

import (
	"slices"
	"strings"

	"go.trai.ch/crater/internal/core/domain"
)

// BranchSpec accepts any commit reachable from one of its branches.
// An empty BranchSpec stands for the default branch of the remote.
type BranchSpec struct {
	branches []string
}

// NewBranchSpec returns a spec over the given branches. Duplicates are dropped.
func NewBranchSpec(branches ...string) BranchSpec {
	out := slices.Clone(branches)
	slices.Sort(out)
	return BranchSpec{branches: slices.Compact(out)}
}

// Branches returns the branch names in sorted order.
func (s BranchSpec) Branches() []string {
	return slices.Clone(s.branches)
}

// Type returns the git backend discriminator.
func (s BranchSpec) Type() string { return Type }

// Join returns the union of both branch sets. It only fails for specs of another backend.
func (s BranchSpec) Join(other domain.DepSpec) (domain.DepSpec, bool) {
	o, ok := other.(BranchSpec)
	if !ok {
		return nil, false
	}
	return NewBranchSpec(append(slices.Clone(s.branches), o.branches...)...), true
}

func (s BranchSpec) String() string {
	if len(s.branches) == 0 {
		return "<default branch>"
	}
	return strings.Join(s.branches, ",")
}

// refs returns the remote-tracking refs candidate commits are drawn from.
func (s BranchSpec) refs() []string {
	if len(s.branches) == 0 {
		return []string{"origin/HEAD"}
	}
	refs := make([]string, 0, len(s.branches))
	for _, b := range s.branches {
		refs = append(refs, "origin/"+b)
	}
	return refs
}
