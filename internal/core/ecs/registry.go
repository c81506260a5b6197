package ecs

// Registry owns the authoritative set of live entities for one level.
//
// Mutation is two-phase: Add and Remove only enqueue, and Commit applies both
// queues at a single point per tick. Anything iterating a Snapshot can
// therefore call Add/Remove freely without seeing or corrupting its own view.
// Accessed only from the simulation goroutine, no locks.
type Registry[T any] struct {
	pool   *EntityPool
	values *Store[T]
	ids    map[*T]EntityID

	active    []EntityID
	activeSet map[EntityID]struct{}

	pendingAdd    []EntityID
	addQueued     map[EntityID]struct{}
	pendingRemove []EntityID
	removeQueued  map[EntityID]struct{}

	onRemove func(EntityID, *T)
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		pool:         NewEntityPool(),
		values:       NewStore[T](),
		ids:          make(map[*T]EntityID, 128),
		active:       make([]EntityID, 0, 128),
		activeSet:    make(map[EntityID]struct{}, 128),
		pendingAdd:   make([]EntityID, 0, 32),
		addQueued:    make(map[EntityID]struct{}, 32),
		removeQueued: make(map[EntityID]struct{}, 32),
	}
}

// OnRemove installs a callback run once for every entity released by
// Commit, before its data is dropped.
func (r *Registry[T]) OnRemove(fn func(EntityID, *T)) {
	r.onRemove = fn
}

// Add allocates a handle for v and queues it for the next Commit, reporting
// true. Adding a value that is already pending or active returns its
// existing handle and false, and queues nothing.
func (r *Registry[T]) Add(v *T) (EntityID, bool) {
	if v == nil {
		panic("ecs: Registry.Add with nil value")
	}
	if id, ok := r.ids[v]; ok {
		return id, false
	}
	id := r.pool.Create()
	r.ids[v] = id
	r.values.Set(id, v)
	r.pendingAdd = append(r.pendingAdd, id)
	r.addQueued[id] = struct{}{}
	return id, true
}

// Remove queues id for removal at the next Commit. Idempotent: stale
// handles and handles already queued are ignored.
func (r *Registry[T]) Remove(id EntityID) {
	if !r.pool.Alive(id) {
		return
	}
	if _, queued := r.removeQueued[id]; queued {
		return
	}
	r.removeQueued[id] = struct{}{}
	r.pendingRemove = append(r.pendingRemove, id)
}

// Commit applies the pending queues: removals first, then additions, then
// both queues are cleared. An entity queued for both in the same tick never
// becomes active.
func (r *Registry[T]) Commit() (added, removed int) {
	for _, id := range r.pendingRemove {
		if _, ok := r.activeSet[id]; ok {
			delete(r.activeSet, id)
			r.release(id)
			removed++
			continue
		}
		if _, ok := r.addQueued[id]; ok {
			delete(r.addQueued, id)
			r.release(id)
		}
	}
	if removed > 0 {
		kept := r.active[:0]
		for _, id := range r.active {
			if _, ok := r.activeSet[id]; ok {
				kept = append(kept, id)
			}
		}
		clear(r.active[len(kept):])
		r.active = kept
	}

	for _, id := range r.pendingAdd {
		if _, ok := r.addQueued[id]; !ok {
			continue
		}
		if _, dup := r.activeSet[id]; dup {
			continue
		}
		r.activeSet[id] = struct{}{}
		r.active = append(r.active, id)
		added++
	}

	r.pendingAdd = r.pendingAdd[:0]
	r.pendingRemove = r.pendingRemove[:0]
	clear(r.addQueued)
	clear(r.removeQueued)
	return added, removed
}

func (r *Registry[T]) release(id EntityID) {
	v, _ := r.values.Get(id)
	if r.onRemove != nil && v != nil {
		r.onRemove(id, v)
	}
	r.values.Remove(id)
	delete(r.ids, v)
	r.pool.Destroy(id)
}

// Snapshot returns a copy of the active set in insertion order.
func (r *Registry[T]) Snapshot() []EntityID {
	out := make([]EntityID, len(r.active))
	copy(out, r.active)
	return out
}

// Get resolves a handle. Pending entities resolve too; stale handles do not.
func (r *Registry[T]) Get(id EntityID) (*T, bool) {
	if !r.pool.Alive(id) {
		return nil, false
	}
	return r.values.Get(id)
}

// Len returns the number of committed entities.
func (r *Registry[T]) Len() int { return len(r.active) }
