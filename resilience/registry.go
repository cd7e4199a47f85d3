package resilience

import (
	"sync"

	"github.com/sony/gobreaker/v2"
)

// Observer exposes a breaker's identity and state to monitoring surfaces.
// Every Pipeline satisfies it.
type Observer interface {
	Name() string
	State() gobreaker.State
}

// Registry collects the breakers behind the service's named operations so
// the metrics endpoint can report them.
type Registry struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds o to the registry. Nil registries and nil observers are
// ignored so wiring stays optional in tests.
func (r *Registry) Register(o Observer) {
	if r == nil || o == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// States returns the current breaker state per operation name.
func (r *Registry) States() map[string]string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	states := make(map[string]string, len(r.observers))
	for _, o := range r.observers {
		states[o.Name()] = o.State().String()
	}
	return states
}
