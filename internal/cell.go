package internal

// Cell holds the last accepted value of a node and counts accepted writes.
type Cell struct {
	value   any
	present bool

	// incremented on every write, never decremented
	version int
}

// Write stores v and bumps the version by exactly one.
func (c *Cell) Write(v any, present bool) {
	c.value = v
	c.present = present
	c.version++
}

func (c *Cell) Value() (any, bool) {
	return c.value, c.present
}

func (c *Cell) Version() int {
	return c.version
}
