// Package registry tracks the running schema instances and resolves
// dependency instance names to their Verifier capabilities.
package registry

import (
	"sort"
	"sync"

	contracts "attestry/contracts/attestation"
	"attestry/internal/attestation/service"
	dErrors "attestry/pkg/domain-errors"
)

// Registry is the process-wide set of schema instances, keyed by name.
// It implements service.DependencyResolver, so instances registered here can
// depend on each other by name.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]*service.Instance
}

func New() *Registry {
	return &Registry{instances: make(map[string]*service.Instance)}
}

// Register adds an instance under its name. Names are unique; registering a
// taken name is a conflict.
func (r *Registry) Register(inst *service.Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := inst.InstanceName()
	if _, exists := r.instances[name]; exists {
		return dErrors.New(dErrors.CodeConflict, "instance name must be unique: "+name)
	}
	r.instances[name] = inst
	return nil
}

// Get returns the instance registered under name.
func (r *Registry) Get(name string) (*service.Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	return inst, ok
}

// Resolve implements service.DependencyResolver.
func (r *Registry) Resolve(name string) (contracts.Verifier, bool) {
	inst, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	return inst, true
}

// Names returns the registered instance names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
