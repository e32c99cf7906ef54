package core

import "time"

// EntityID is a generation-checked handle into an Arena. The low 32 bits
// are the slot index, the high 32 bits the slot generation. The zero value
// never refers to a live entity.
type EntityID uint64

func makeID(index, gen uint32) EntityID { return EntityID(uint64(gen)<<32 | uint64(index)) }

// Index returns the arena slot
func (id EntityID) Index() uint32 { return uint32(id) }

// Gen returns the slot generation the handle was issued for
func (id EntityID) Gen() uint32 { return uint32(id >> 32) }

type slot[T any] struct {
	gen   uint32
	alive bool
	value T
}

// Arena owns records of one kind. Removing a record bumps its slot
// generation so stale handles stop resolving.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// Insert stores v and returns its handle
func (a *Arena[T]) Insert(v T) EntityID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		// generations start at 1 so EntityID(0) is never valid
		a.slots = append(a.slots, slot[T]{gen: 1})
	}
	s := &a.slots[idx]
	s.alive = true
	s.value = v
	a.count++
	return makeID(idx, s.gen)
}

// Get returns the record for id, or nil if the handle is stale
func (a *Arena[T]) Get(id EntityID) *T {
	idx := id.Index()
	if int(idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx]
	if !s.alive || s.gen != id.Gen() {
		return nil
	}
	return &s.value
}

// Has reports whether id refers to a live record
func (a *Arena[T]) Has(id EntityID) bool { return a.Get(id) != nil }

// Remove deletes the record; stale handles are ignored
func (a *Arena[T]) Remove(id EntityID) bool {
	if a.Get(id) == nil {
		return false
	}
	idx := id.Index()
	s := &a.slots[idx]
	var zero T
	s.value = zero
	s.alive = false
	s.gen++
	a.free = append(a.free, idx)
	a.count--
	return true
}

// Len returns the number of live records
func (a *Arena[T]) Len() int { return a.count }

// Each visits live records in slot order. fn must not insert or remove.
func (a *Arena[T]) Each(fn func(id EntityID, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.alive {
			fn(makeID(uint32(i), s.gen), &s.value)
		}
	}
}

// IDs returns the handles of all live records in slot order
func (a *Arena[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, a.count)
	a.Each(func(id EntityID, _ *T) { ids = append(ids, id) })
	return ids
}

// Clear drops every record and invalidates all outstanding handles
func (a *Arena[T]) Clear() {
	for i := range a.slots {
		if a.slots[i].alive {
			a.Remove(makeID(uint32(i), a.slots[i].gen))
		}
	}
}

// World holds all simulated entities and the stages that update them
type World struct {
	Creatures Arena[Creature]
	Attacks   Arena[Attack]
	Dust      Arena[Dust]

	Session *Session

	systems   []System
	TickCount uint64
}

// System processes the world once per tick. Lower priority runs first.
type System interface {
	Update(w *World, dt time.Duration)
	Priority() int
}

// Resetter is implemented by systems that keep per-session state
type Resetter interface {
	Reset()
}

// NewWorld creates an empty world bound to a session
func NewWorld(s *Session) *World {
	return &World{Session: s}
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion, stable for equal priorities)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Systems returns the registered systems in run order
func (w *World) Systems() []System { return w.systems }

// Tick runs all systems once
func (w *World) Tick(dt time.Duration) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.TickCount++
	if w.Session != nil && w.Session.Bus != nil {
		w.Session.Bus.Dispatch()
	}
}

// Reset discards every entity and all per-session system state. Used when
// leaving the gameplay screen.
func (w *World) Reset(s *Session) {
	w.Creatures.Clear()
	w.Attacks.Clear()
	w.Dust.Clear()
	w.TickCount = 0
	w.Session = s
	for _, sys := range w.systems {
		if r, ok := sys.(Resetter); ok {
			r.Reset()
		}
	}
}

// EntityCount returns the number of live entities of all kinds
func (w *World) EntityCount() int {
	return w.Creatures.Len() + w.Attacks.Len() + w.Dust.Len()
}

// AliveCreatures counts creatures that are not dying
func (w *World) AliveCreatures() int {
	n := 0
	w.Creatures.Each(func(_ EntityID, c *Creature) {
		if c.Alive() {
			n++
		}
	})
	return n
}
