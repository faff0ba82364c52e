package board

import (
	"slices"

	"github.com/vovakirdan/fracture/internal/core"
)

// Control marks a shape as driven by player input.
type Control struct {
	Lane      int  // input lane; the game uses lane 0
	SinceDrop int  // ticks since the last successful downward move
	Idle      int  // consecutive ticks without movement
	Moved     bool // moved since the previous tick was aged
}

// Attach gives id a fresh control marker on lane.
func (b *Board) Attach(id ShapeID, lane int) bool {
	if _, ok := b.shapes.Get(id); !ok {
		return false
	}
	b.control.Put(id, &Control{Lane: lane, Moved: true})
	return true
}

// Detach drops the control marker of id.
func (b *Board) Detach(id ShapeID) {
	b.control.Del(id)
}

// IsControlled reports whether id holds a control marker.
func (b *Board) IsControlled(id ShapeID) bool {
	return b.control.Has(id)
}

// ControlOf returns the marker of id.
func (b *Board) ControlOf(id ShapeID) (*Control, bool) {
	return b.control.Get(id)
}

// Controlled returns the shapes controlled on lane in handle order.
func (b *Board) Controlled(lane int) []ShapeID {
	var out []ShapeID
	b.control.ForEach(func(id ShapeID, c *Control) bool {
		if c.Lane == lane {
			out = append(out, id)
		}
		return true
	})
	slices.Sort(out)
	return out
}

// AnyControlled reports whether some shape holds a control marker.
func (b *Board) AnyControlled() bool {
	return b.control.Len() > 0
}

func (b *Board) noteMoved(id ShapeID, down bool) {
	c, ok := b.control.Get(id)
	if !ok {
		return
	}
	c.Moved = true
	if down {
		c.SinceDrop = 0
	}
}

// ageControls runs at the end of a tick and returns the shapes that lost
// their marker.
func (b *Board) ageControls() []ShapeID {
	var detached []ShapeID
	b.control.ForEach(func(id ShapeID, c *Control) bool {
		if _, ok := b.shapes.Get(id); !ok {
			detached = append(detached, id)
			return true
		}
		c.SinceDrop++
		if c.Moved {
			c.Idle = 0
		} else {
			c.Idle++
		}
		c.Moved = false
		if c.Idle >= b.opts.LockDelay || c.SinceDrop > b.opts.MaxDropWait {
			detached = append(detached, id)
		}
		return true
	})
	slices.Sort(detached)
	for _, id := range detached {
		b.control.Del(id)
	}
	return detached
}

// Intent is a discrete player command.
type Intent uint8

const (
	IntentLeft Intent = iota
	IntentRight
	IntentDown
	IntentRotate
	intentCount
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentDown:
		return "down"
	case IntentRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Held is the set of intents whose key is currently down.
type Held uint8

// With returns h with i added.
func (h Held) With(i Intent) Held {
	return h | 1<<i
}

// Has reports whether i is held.
func (h Held) Has(i Intent) bool {
	return h&(1<<i) != 0
}

// apply performs one intent on every controlled shape of lane.
// A downward move that fails locks the shape in place.
func (b *Board) apply(lane int, in Intent) bool {
	moved := false
	for _, id := range b.Controlled(lane) {
		switch in {
		case IntentLeft:
			moved = b.Translate(id, core.Left) || moved
		case IntentRight:
			moved = b.Translate(id, core.Right) || moved
		case IntentRotate:
			moved = b.Rotate(id, true) || moved
		case IntentDown:
			if b.Translate(id, core.Down) {
				moved = true
			} else {
				b.Detach(id)
			}
		}
	}
	return moved
}
