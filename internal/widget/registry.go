package widget

import (
	"sync"

	"github.com/rileyhilliard/pidash/internal/logger"
)

// Registry owns the open widgets, at most one per sensor id.
// Toggle and Close are serialized so two calls for the same sensor can never
// leave two instances alive.
type Registry struct {
	mu    sync.Mutex
	items map[string]*Instance
	// order holds sensor ids in creation order, oldest first.
	order []string
	opts  []Option
	log   logger.Logger
}

// NewRegistry creates an empty registry. opts are applied to every widget
// it creates.
func NewRegistry(opts ...Option) *Registry {
	o := buildOptions(opts)
	return &Registry{
		items: make(map[string]*Instance),
		opts:  opts,
		log:   o.log,
	}
}

// Toggle closes the widget for ref if one is open and returns false;
// otherwise it opens one and returns true.
func (r *Registry) Toggle(ref SensorRef, hostLabel, deviceLabel string) bool {
	r.mu.Lock()
	if w, ok := r.items[ref.SensorID]; ok {
		r.removeLocked(ref.SensorID)
		r.mu.Unlock()
		// Destroy runs outside the lock; listener callbacks may call back
		// into the registry.
		w.Destroy()
		r.log.Debug("closed widget %s (%s)", ref.SensorID, w.ID())
		return false
	}

	w := New(ref, hostLabel, deviceLabel, r.opts...)
	r.items[ref.SensorID] = w
	r.order = append(r.order, ref.SensorID)
	r.mu.Unlock()

	r.log.Debug("opened widget %s (%s) under %s / %s", ref.SensorID, w.ID(), hostLabel, deviceLabel)
	return true
}

// Close destroys and removes the widget for sensorID, as the widget's own
// close button does. Reports whether a widget was open.
func (r *Registry) Close(sensorID string) bool {
	r.mu.Lock()
	w, ok := r.items[sensorID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	r.removeLocked(sensorID)
	r.mu.Unlock()

	w.Destroy()
	r.log.Debug("closed widget %s (%s)", sensorID, w.ID())
	return true
}

// CloseAll destroys every widget and returns how many were open.
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	open := r.items
	r.items = make(map[string]*Instance)
	r.order = nil
	r.mu.Unlock()

	for _, w := range open {
		w.Destroy()
	}
	return len(open)
}

// removeLocked must be called with r.mu held.
func (r *Registry) removeLocked(sensorID string) {
	delete(r.items, sensorID)
	for i, id := range r.order {
		if id == sensorID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the widget for sensorID.
func (r *Registry) Get(sensorID string) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.items[sensorID]
	return w, ok
}

// Instance returns the open widget whose instance id is id. Listener
// callbacks are keyed by instance id, so this is how they find their widget.
func (r *Registry) Instance(id string) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.items {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

// Has reports whether a widget is open for sensorID.
func (r *Registry) Has(sensorID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[sensorID]
	return ok
}

// Len returns the number of open widgets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// List returns the open widgets, most recently created first.
func (r *Registry) List() []*Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Instance, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.items[r.order[i]])
	}
	return out
}

// IDs returns the open sensor ids, most recently created first.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.order[i])
	}
	return out
}
