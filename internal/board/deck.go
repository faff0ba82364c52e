package board

import (
	"math/rand"

	"github.com/vovakirdan/fracture/internal/core"
)

// Template describes a shape before it is placed: offsets relative to the
// spawn center, a color and the modifiers given to every block.
type Template struct {
	Name    string
	Offsets []core.Vec
	Color   core.Color
	Mods    Modifier
}

// Deck supplies the next template to spawn. Next never fails.
type Deck interface {
	Next() Template
}

// StandardTemplates returns the seven tetrominoes.
func StandardTemplates() []Template {
	return []Template{
		{Name: "I", Color: core.ColorCyan, Offsets: []core.Vec{{X: 0, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: -2}, {X: 0, Y: 1}}},
		{Name: "Z", Color: core.ColorRed, Offsets: []core.Vec{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: -1}}},
		{Name: "O", Color: core.ColorYellow, Offsets: []core.Vec{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: -1}}},
		{Name: "S", Color: core.ColorBrightGreen, Offsets: []core.Vec{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: -1}}},
		{Name: "T", Color: core.ColorMagenta, Offsets: []core.Vec{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}},
		{Name: "J", Color: core.ColorBlue, Offsets: []core.Vec{{X: 0, Y: 2}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: -1, Y: 0}}},
		{Name: "L", Color: core.ColorOrange, Offsets: []core.Vec{{X: 0, Y: 2}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}}},
	}
}

// BagDeck deals every template once in shuffled order, then refills.
type BagDeck struct {
	templates []Template
	bag       []Template
	rng       *rand.Rand

	// FastChance is the probability that a dealt template carries ModFast.
	FastChance float64
}

// NewBagDeck creates a deck over templates seeded with seed. An empty
// template list falls back to StandardTemplates.
func NewBagDeck(templates []Template, seed int64) *BagDeck {
	if len(templates) == 0 {
		templates = StandardTemplates()
	}
	return &BagDeck{
		templates: templates,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (d *BagDeck) refill() {
	d.bag = append(d.bag[:0], d.templates...)
	d.rng.Shuffle(len(d.bag), func(i, j int) {
		d.bag[i], d.bag[j] = d.bag[j], d.bag[i]
	})
}

// Next pops the next template from the bag.
func (d *BagDeck) Next() Template {
	if len(d.bag) == 0 {
		d.refill()
	}
	t := d.bag[len(d.bag)-1]
	d.bag = d.bag[:len(d.bag)-1]
	if d.FastChance > 0 && d.rng.Float64() < d.FastChance {
		t.Mods |= ModFast
	}
	return t
}

// Remaining returns how many templates are left before the next refill.
func (d *BagDeck) Remaining() int {
	return len(d.bag)
}
