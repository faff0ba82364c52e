package board

// ChainScorer accumulates cleared lines into a chain and banks chain² points
// once the board comes to rest.
type ChainScorer struct {
	chain    int
	score    int
	lines    int
	maxChain int
}

// Add extends the current chain by lines.
func (c *ChainScorer) Add(lines int) {
	if lines <= 0 {
		return
	}
	c.chain += lines
	c.lines += lines
	if c.chain > c.maxChain {
		c.maxChain = c.chain
	}
}

// Finalize banks the chain when the tick did not mutate the grid and returns
// the points awarded.
func (c *ChainScorer) Finalize(out TickOutcome) int {
	if out.Mutated || c.chain == 0 {
		return 0
	}
	delta := c.chain * c.chain
	c.score += delta
	c.chain = 0
	return delta
}

// Chain returns the unbanked chain length.
func (c *ChainScorer) Chain() int { return c.chain }

// Score returns the banked score. It never decreases.
func (c *ChainScorer) Score() int { return c.score }

// Lines returns the total number of rows cleared.
func (c *ChainScorer) Lines() int { return c.lines }

// MaxChain returns the longest chain seen.
func (c *ChainScorer) MaxChain() int { return c.maxChain }

// Reset zeroes every counter.
func (c *ChainScorer) Reset() {
	*c = ChainScorer{}
}
