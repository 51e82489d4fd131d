package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Config selects and parameterizes a backend. Kind is one of the registered
// backend names; DSN is passed to the backend verbatim.
type Config struct {
	Kind string
	DSN  string
}

// Factory constructs a ready-to-use Repository for one backend kind.
// Implementations live in the backend packages and are registered at init.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	facMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a backend kind. It is
// called from backend packages' init() functions.
func Register(kind string, fn Factory) {
	facMu.Lock()
	defer facMu.Unlock()
	factories[kind] = fn
}

// New constructs a Repository for cfg.Kind. An unregistered kind is a
// configuration error; the message lists the kinds that are wired in so a
// missing blank import is obvious.
func New(ctx context.Context, cfg Config) (Repository, error) {
	facMu.RLock()
	fn, ok := factories[cfg.Kind]
	facMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s (registered: %s)",
			cfg.Kind, strings.Join(ListKinds(), ", "))
	}
	return fn(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered backend kinds.
func ListKinds() []string {
	facMu.RLock()
	defer facMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
