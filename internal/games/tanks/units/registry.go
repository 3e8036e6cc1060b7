package units

// Registry owns the live tanks and hands out stable IDs. Iteration follows
// insertion order.
type Registry struct {
	next  TankID
	order []*Tank
	byID  map[TankID]*Tank
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[TankID]*Tank)}
}

// Add assigns the tank a fresh ID and takes ownership of it.
func (r *Registry) Add(t *Tank) TankID {
	r.next++
	t.ID = r.next
	r.order = append(r.order, t)
	r.byID[t.ID] = t
	return t.ID
}

// Remove detaches the tank with the given ID. Removed IDs are never reused.
func (r *Registry) Remove(id TankID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, t := range r.order {
		if t.ID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Replace swaps the tank registered under old.ID for t, keeping its place in
// the iteration order. The new tank gets a fresh ID.
func (r *Registry) Replace(old, t *Tank) TankID {
	r.next++
	t.ID = r.next
	delete(r.byID, old.ID)
	r.byID[t.ID] = t
	for i, cur := range r.order {
		if cur == old {
			r.order[i] = t
			return t.ID
		}
	}
	r.order = append(r.order, t)
	return t.ID
}

// Get looks up a live tank.
func (r *Registry) Get(id TankID) (*Tank, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Len returns the number of live tanks.
func (r *Registry) Len() int { return len(r.order) }

// All returns a snapshot of every tank, safe to iterate while removing.
func (r *Registry) All() []*Tank {
	return append([]*Tank(nil), r.order...)
}

// Fraction returns a snapshot of the tanks fighting for f.
func (r *Registry) Fraction(f Fraction) []*Tank {
	var out []*Tank
	for _, t := range r.order {
		if t.Fraction == f {
			out = append(out, t)
		}
	}
	return out
}

// Clear drops every tank. IDs keep counting up.
func (r *Registry) Clear() {
	r.order = nil
	r.byID = make(map[TankID]*Tank)
}
