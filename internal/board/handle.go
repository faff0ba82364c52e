package board

import "fmt"

// ShapeID is a stable handle to a Shape: generation in the upper 32 bits,
// slot index in the lower 32 bits. The zero value never refers to a shape.
type ShapeID uint64

// BlockID is a stable handle to a Block, laid out like ShapeID.
type BlockID uint64

// handle is the constraint shared by ShapeID and BlockID.
type handle interface {
	~uint64
}

func makeHandle[H handle](gen, index uint32) H {
	return H(uint64(gen)<<32 | uint64(index))
}

func splitHandle[H handle](h H) (gen, index uint32) {
	return uint32(uint64(h) >> 32), uint32(uint64(h) & 0xFFFFFFFF)
}

// String renders the handle as index@generation.
func (id ShapeID) String() string {
	gen, idx := splitHandle(id)
	return fmt.Sprintf("shape#%d@%d", idx, gen)
}

// String renders the handle as index@generation.
func (id BlockID) String() string {
	gen, idx := splitHandle(id)
	return fmt.Sprintf("block#%d@%d", idx, gen)
}

type slot[T any] struct {
	gen uint32
	val *T // nil when the slot is free
}

// Arena allocates values behind generational handles. Freed slots are reused
// with a bumped generation so stale handles resolve to "not found".
// Values are stored behind pointers, so a pointer returned by Get stays valid
// across later allocations.
type Arena[H handle, T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// NewArena creates an empty arena with room for capacity values.
func NewArena[H handle, T any](capacity int) *Arena[H, T] {
	return &Arena[H, T]{
		slots: make([]slot[T], 0, capacity),
	}
}

// Alloc stores v and returns its handle.
func (a *Arena[H, T]) Alloc(v *T) H {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.gen++
		if s.gen == 0 {
			s.gen = 1
		}
		s.val = v
		return makeHandle[H](s.gen, idx)
	}
	a.slots = append(a.slots, slot[T]{gen: 1, val: v})
	return makeHandle[H](1, uint32(len(a.slots)-1))
}

// Get resolves a handle. It returns false for the zero handle, for freed
// slots and for handles whose generation is stale.
func (a *Arena[H, T]) Get(h H) (*T, bool) {
	gen, idx := splitHandle(h)
	if gen == 0 || int(idx) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[idx]
	if s.gen != gen || s.val == nil {
		return nil, false
	}
	return s.val, true
}

// Free releases the value behind h. Returns false if h was not live.
func (a *Arena[H, T]) Free(h H) bool {
	if _, ok := a.Get(h); !ok {
		return false
	}
	_, idx := splitHandle(h)
	a.slots[idx].val = nil
	a.free = append(a.free, idx)
	a.live--
	return true
}

// Len returns the number of live values.
func (a *Arena[H, T]) Len() int {
	return a.live
}

// Handles returns every live handle in slot order.
func (a *Arena[H, T]) Handles() []H {
	out := make([]H, 0, a.live)
	for i, s := range a.slots {
		if s.val != nil {
			out = append(out, makeHandle[H](s.gen, uint32(i)))
		}
	}
	return out
}
