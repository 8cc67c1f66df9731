package aurio

import (
	"fmt"
	"sync"
)

// HostFactory constructs (or returns the process-wide singleton for) a
// Host. Host packages register one of these in their init() via
// RegisterHost — the core never imports a specific backend package
// directly, so a binary that only imports hosts/null stays free of any
// native-library dependency.
type HostFactory func() (Host, error)

var (
	registryMu sync.Mutex
	registry   = map[HostID]HostFactory{}
	// registrationOrder preserves the order hosts registered in, so
	// AvailableHosts and DefaultHost have a deterministic, declaration-
	// order tie-break (spec §4.2's ranking heuristic uses the same
	// rule for configs; we apply it here too for consistency).
	registrationOrder []HostID
)

// RegisterHost is called from a hosts/* package's init(). Registering
// the same HostID twice replaces the earlier factory, which lets a
// caller's own build override a stock host implementation.
func RegisterHost(id HostID, factory HostFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; !exists {
		registrationOrder = append(registrationOrder, id)
	}
	registry[id] = factory
}

// AvailableHosts lists every HostID that has been registered in this
// binary (compile-time availability, via package import — the
// ALL_HOSTS list from spec §6.1, narrowed to what this build actually
// links), in registration order.
func AvailableHosts() []HostID {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]HostID, len(registrationOrder))
	copy(out, registrationOrder)
	return out
}

// ErrHostUnavailable is returned by HostFromID when no factory is
// registered for the requested id.
var ErrHostUnavailable = fmt.Errorf("aurio: host unavailable")

// HostFromID constructs the Host for id, or ErrHostUnavailable if no
// hosts/* package registered one.
func HostFromID(id HostID) (Host, error) {
	registryMu.Lock()
	factory, ok := registry[id]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHostUnavailable, id)
	}
	return factory()
}

// DefaultHost returns the platform's preferred backend: the first
// registered host (by registration order, which host packages are
// expected to arrange so the native backend registers ahead of
// hosts/null) that reports IsAvailable() == true. If nothing is
// available it falls back to the null host, which is always available.
func DefaultHost() Host {
	for _, id := range AvailableHosts() {
		h, err := HostFromID(id)
		if err != nil {
			continue
		}
		if h.IsAvailable() {
			return h
		}
	}
	h, err := HostFromID(Null)
	if err != nil {
		// This package imports no host package; Null is registered
		// only by hosts/null's init(). Reaching here means the binary
		// imports neither hosts/null nor any host that is available.
		panic("aurio: no host registered, import a hosts/* package for its init() side effect")
	}
	return h
}
