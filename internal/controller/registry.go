package controller

import (
	"sync"

	"github.com/ndkhanh/quizroom/internal/model"
)

// Registry is the Controller's exclusively-owned map of live Sessions
// (spec.md §3 "Ownership/lifetime", §5 "the Session registry is the only
// process-wide mutable state ... a simple serialized registry is
// sufficient"). A plain mutex-guarded map is deliberately simpler than the
// per-Session actor below it: registry operations are all O(1) map access,
// so there is nothing to gain from a second channel-based layer here.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*sessionActor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*sessionActor)}
}

// Create allocates a fresh Session owned by ownerConnID under a freshly
// generated, registry-unique id, and returns the actor that now owns it.
func (r *Registry) Create(ownerConnID string) *sessionActor {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id string
	for {
		id = model.GenerateSessionID()
		if _, exists := r.sessions[id]; !exists {
			break
		}
	}

	actor := newSessionActor(model.NewSession(id, ownerConnID))
	r.sessions[id] = actor
	return actor
}

// Get looks up the actor owning the Session with the given id.
func (r *Registry) Get(id string) (*sessionActor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.sessions[id]
	return a, ok
}

// Remove drops id from the registry and stops its actor, if present.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.sessions[id]; ok {
		delete(r.sessions, id)
		a.stop()
	}
}

// All returns a snapshot of every live actor, keyed by session id. Used by
// disconnect handling, which must scan every Session for one touched by the
// dropped connection.
func (r *Registry) All() map[string]*sessionActor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*sessionActor, len(r.sessions))
	for k, v := range r.sessions {
		out[k] = v
	}
	return out
}
