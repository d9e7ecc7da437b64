package internal

// Gate counts the listeners of a node.
// The node is active while the count is above zero.
type Gate struct {
	count int
}

// Inc adds a listener and reports whether the node just became active.
func (g *Gate) Inc() bool {
	g.count++
	return g.count == 1
}

// Dec removes a listener and reports whether the node just became inactive.
// Calling Dec on an inactive gate does nothing.
func (g *Gate) Dec() bool {
	if g.count == 0 {
		return false
	}

	g.count--
	return g.count == 0
}

func (g *Gate) Active() bool {
	return g.count > 0
}

func (g *Gate) Count() int {
	return g.count
}
