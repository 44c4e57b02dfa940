package resolver

import (
	"maps"
	"slices"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/engine/registry"
)

type pending struct {
	crate *registry.Crate
	spec  domain.DepSpec
}

type edge struct {
	crate *registry.Crate
	dep   string
}

// state is one branch of the search. Every candidate works on its own copy,
// so rejecting a candidate is just dropping the copy.
type state struct {
	locked   map[*registry.Crate]domain.Version
	unlocked []pending
	remotes  map[domain.Remote][]*registry.Crate
	targets  map[edge]*registry.Crate
}

func newState(reg *registry.Registry) *state {
	st := &state{
		locked:  make(map[*registry.Crate]domain.Version),
		remotes: make(map[domain.Remote][]*registry.Crate),
		targets: make(map[edge]*registry.Crate),
	}
	for _, c := range reg.Crates() {
		st.remotes[c.Remote] = append(st.remotes[c.Remote], c)
	}
	return st
}

func (s *state) clone() *state {
	remotes := make(map[domain.Remote][]*registry.Crate, len(s.remotes))
	for k, v := range s.remotes {
		remotes[k] = slices.Clone(v)
	}
	return &state{
		locked:   maps.Clone(s.locked),
		unlocked: slices.Clone(s.unlocked),
		remotes:  remotes,
		targets:  maps.Clone(s.targets),
	}
}

func (s *state) pendingIndex(c *registry.Crate) int {
	return slices.IndexFunc(s.unlocked, func(p pending) bool { return p.crate == c })
}

// lockedCrates returns the crates of a solution sorted by name, so parents precede nested crates.
func (s *state) lockedCrates() []*registry.Crate {
	crates := slices.Collect(maps.Keys(s.locked))
	slices.SortFunc(crates, func(a, b *registry.Crate) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return crates
}
