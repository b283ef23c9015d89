package sim

// Cursor turns polled cursor positions into pointer-move events. The first
// poll only records where the cursor is; a move is reported once the
// position differs from the last one seen.
type Cursor struct {
	x, y float64
	seen bool
}

// Moved records (x, y) and reports whether it is a move.
func (c *Cursor) Moved(x, y float64) bool {
	if !c.seen {
		c.x, c.y, c.seen = x, y, true
		return false
	}
	if x == c.x && y == c.y {
		return false
	}
	c.x, c.y = x, y
	return true
}
