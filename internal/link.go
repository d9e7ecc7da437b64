package internal

import "iter"

// Link is the registration of one listener on a node.
type Link struct {
	node *Node
	fn   func(v any, present bool)

	// node version when the listener attached
	version int
	removed bool

	prev *Link
	next *Link
}

// linkList is an intrusive list where head.prev points to the tail.
type linkList struct {
	head *Link
}

func (l *linkList) add(link *Link) {
	if l.head == nil {
		l.head = link
		link.prev = link // loop to self
		link.next = nil
		return
	}

	tail := l.head.prev
	tail.next = link
	link.prev = tail
	link.next = nil
	l.head.prev = link
}

// remove unlinks link but keeps its next pointer so an iteration currently
// standing on it can still move forward.
func (l *linkList) remove(link *Link) {
	link.removed = true

	if link == l.head {
		l.head = link.next
		if l.head != nil {
			l.head.prev = link.prev
		}
		return
	}

	link.prev.next = link.next
	if link.next != nil {
		link.next.prev = link.prev
	} else {
		l.head.prev = link.prev
	}
}

// All iterates over live links. Links removed during iteration are skipped.
func (l *linkList) All() iter.Seq[*Link] {
	return func(yield func(*Link) bool) {
		link := l.head
		for link != nil {
			next := link.next
			if !link.removed && !yield(link) {
				return
			}

			link = next
		}
	}
}
