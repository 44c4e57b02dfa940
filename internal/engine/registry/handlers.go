package registry

import (
	"maps"
	"slices"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
)

// Handlers is the closed set of backends, keyed by discriminator.
type Handlers map[string]ports.Handler

// NewHandlers indexes the given handlers by their type.
func NewHandlers(handlers ...ports.Handler) Handlers {
	out := make(Handlers, len(handlers))
	for _, h := range handlers {
		out[h.Type()] = h
	}
	return out
}

// Get returns the handler for typ.
func (h Handlers) Get(typ string) (ports.Handler, error) {
	handler, ok := h[typ]
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrUnknownBackend, "type", typ), "known", h.Types())
	}
	return handler, nil
}

// Types returns the registered discriminators in sorted order.
func (h Handlers) Types() []string {
	return slices.Sorted(maps.Keys(h))
}
