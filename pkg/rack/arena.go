package rack

// Arena owns a set of racks and assigns them stable IDs in insertion order.
type Arena struct {
	racks []*Rack
}

// NewArena returns an arena holding racks, renumbering them from zero.
func NewArena(racks ...*Rack) *Arena {
	a := &Arena{}
	for _, r := range racks {
		a.Add(r)
	}
	return a
}

// Add stores r, assigns its ID and returns it.
func (a *Arena) Add(r *Rack) ID {
	r.ID = ID(len(a.racks))
	a.racks = append(a.racks, r)
	return r.ID
}

// Get returns the rack with the given ID, or nil if out of range.
func (a *Arena) Get(id ID) *Rack {
	if int(id) < 0 || int(id) >= len(a.racks) {
		return nil
	}
	return a.racks[id]
}

// Len returns the number of racks.
func (a *Arena) Len() int { return len(a.racks) }

// All returns the racks in ID order. The slice is shared with the arena.
func (a *Arena) All() []*Rack { return a.racks }

// RemoveLast drops the most recently added rack. Layout strategies use it to
// discard a rack that failed to grow long enough.
func (a *Arena) RemoveLast() {
	if n := len(a.racks); n > 0 {
		a.racks = a.racks[:n-1]
	}
}

// Freeze makes every rack fixed.
func (a *Arena) Freeze() {
	for _, r := range a.racks {
		r.Freeze()
	}
}
