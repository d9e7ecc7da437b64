package internal

// Source is anything a node can subscribe to. Handles are opaque to the node.
type Source interface {
	Subscribe(fn func(v any, present bool)) any
	Unsubscribe(handle any)
}

// Node caches the last value produced by running its operator over the
// emissions of its source. It only listens to its source while it has
// listeners of its own.
type Node struct {
	runtime *Runtime
	id      int64
	name    string

	source   Source
	op       Operator
	upstream any // handle returned by source.Subscribe while active

	cell  Cell
	gate  Gate
	links linkList

	// single nodes only deliver values newer than the listener. The version
	// they compare against belongs to versionSource, the first single node
	// of the chain.
	single        bool
	versionSource *Node
}

// NewRoot creates a node without source. Values are written with Write.
func (r *Runtime) NewRoot(name string) *Node {
	return &Node{
		runtime: r,
		id:      r.newNodeID(),
		name:    name,
	}
}

// NewNode derives a node from source. The node is single when asked to be or
// when source is a single node, in which case it shares the source's version.
func (r *Runtime) NewNode(source Source, op Operator, single bool, name string) *Node {
	if op == nil {
		panic("live: nil operator")
	}

	return r.newNode(source, op, single, name)
}

// NewRelay derives a node that stores every source emission as is, absent
// values included, the way roots do.
func (r *Runtime) NewRelay(source Source, name string) *Node {
	return r.newNode(source, nil, false, name)
}

func (r *Runtime) newNode(source Source, op Operator, single bool, name string) *Node {
	if source == nil {
		panic("live: nil source")
	}

	n := &Node{
		runtime: r,
		id:      r.newNodeID(),
		name:    name,
		source:  source,
		op:      op,
	}

	if up, ok := source.(*Node); ok && up.single {
		n.single = true
		n.versionSource = up.versionSource
	} else if single {
		n.single = true
		n.versionSource = n
	}

	return n
}

// Runtime returns the graph this node belongs to.
func (n *Node) Runtime() *Runtime { return n.runtime }

func (n *Node) IsSingle() bool { return n.single }

// Attach registers fn and activates the node if it was inactive. State nodes
// replay their current value to fn right away.
//
// Activation happens before the listener records its version, so a value
// replayed by the source while activating is not treated as a new event.
func (n *Node) Attach(fn func(v any, present bool)) *Link {
	n.runtime.mu.Lock()
	defer n.runtime.mu.Unlock()

	if n.gate.Inc() {
		n.activate()
	}

	link := &Link{node: n, fn: fn, version: n.version()}
	n.links.add(link)

	if !n.single {
		if v, ok := n.cell.Value(); ok {
			n.replay(link, v)
		}
	}

	return link
}

// replay delivers the current value to a new link. If the listener panics
// the link is dropped again so the gate stays in sync with the list.
func (n *Node) replay(link *Link, v any) {
	done := false
	defer func() {
		if !done && !link.removed {
			n.links.remove(link)
			if n.gate.Dec() {
				n.deactivate()
			}
		}
	}()

	n.runtime.recorder.Delivered(false)
	link.fn(v, true)
	done = true
}

// Detach removes link and deactivates the node when it was the last one.
// Detaching twice, or a link of another node, does nothing.
func (n *Node) Detach(link *Link) {
	n.runtime.mu.Lock()
	defer n.runtime.mu.Unlock()

	if link == nil || link.node != n || link.removed {
		return
	}

	n.links.remove(link)

	if n.gate.Dec() {
		n.deactivate()
	}
}

// Subscribe implements Source so nodes can be chained.
func (n *Node) Subscribe(fn func(v any, present bool)) any {
	return n.Attach(fn)
}

// Unsubscribe implements Source.
func (n *Node) Unsubscribe(handle any) {
	link, _ := handle.(*Link)
	n.Detach(link)
}

// Receive runs the operator over one source emission and writes the result.
func (n *Node) Receive(v any, present bool) {
	n.runtime.mu.Lock()
	defer n.runtime.mu.Unlock()

	if n.op == nil {
		n.runtime.recorder.Emitted(true)
		n.write(v, present)
		return
	}

	out, ok := n.op.Run(v, present)
	n.runtime.recorder.Emitted(ok)
	if !ok {
		n.runtime.logger.Trace().
			Str("graph", n.runtime.id).
			Int64("node", n.id).
			Str("name", n.name).
			Msg("emission suppressed")
		return
	}

	n.write(out, true)
}

// Write stores v as the node value and notifies listeners. Only roots should
// be written to directly; absent values are legitimate there.
func (n *Node) Write(v any, present bool) {
	n.runtime.mu.Lock()
	defer n.runtime.mu.Unlock()

	n.write(v, present)
}

func (n *Node) write(v any, present bool) {
	n.cell.Write(v, present)

	written := n.cell.Version()
	version := n.version()

	for link := range n.links.All() {
		// a listener wrote to this node again, later links already got the newer value
		if n.cell.Version() != written {
			return
		}

		// links attached during this fan-out already saw the value on attach
		if version <= link.version {
			continue
		}

		n.runtime.recorder.Delivered(n.single)
		link.fn(v, present)
	}
}

// Value returns the cached value.
func (n *Node) Value() (any, bool) {
	n.runtime.mu.Lock()
	defer n.runtime.mu.Unlock()

	return n.cell.Value()
}

// Version returns the version used for delivery decisions: the node's own
// write count, or the version of the first single node of its chain.
func (n *Node) Version() int {
	n.runtime.mu.Lock()
	defer n.runtime.mu.Unlock()

	return n.version()
}

func (n *Node) version() int {
	if n.versionSource != nil && n.versionSource != n {
		return n.versionSource.cell.Version()
	}

	return n.cell.Version()
}

// Listeners returns the number of attached listeners.
func (n *Node) Listeners() int {
	n.runtime.mu.Lock()
	defer n.runtime.mu.Unlock()

	return n.gate.Count()
}

func (n *Node) IsActive() bool {
	n.runtime.mu.Lock()
	defer n.runtime.mu.Unlock()

	return n.gate.Active()
}

func (n *Node) activate() {
	if n.source == nil {
		return
	}

	// a source that panics while replaying leaves the node inactive
	done := false
	defer func() {
		if !done {
			n.gate.Dec()
		}
	}()

	n.upstream = n.source.Subscribe(n.Receive)
	done = true

	n.runtime.recorder.Activated()
	n.runtime.logger.Debug().
		Str("graph", n.runtime.id).
		Int64("node", n.id).
		Str("name", n.name).
		Msg("node activated")
}

func (n *Node) deactivate() {
	if n.source == nil {
		return
	}

	upstream := n.upstream
	n.upstream = nil
	n.source.Unsubscribe(upstream)
	n.runtime.recorder.Deactivated()
	n.runtime.logger.Debug().
		Str("graph", n.runtime.id).
		Int64("node", n.id).
		Str("name", n.name).
		Msg("node deactivated")
}
