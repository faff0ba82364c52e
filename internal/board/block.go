package board

// Modifier is a bit set of per-block effects.
type Modifier uint8

const (
	// ModFast lets the block's row clear even while the row is still settling.
	ModFast Modifier = 1 << iota
)

// Has reports whether every bit of f is set.
func (m Modifier) Has(f Modifier) bool {
	return m&f == f && f != 0
}

// Block is one grid-occupying unit of a Shape.
type Block struct {
	Shape ShapeID  // owning shape
	Moved bool     // position changed during the current tick
	Mods  Modifier // active modifiers
}
