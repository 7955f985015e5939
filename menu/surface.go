package menu

import (
	"sync"
)

// Node is an element of a rendered tree. Only the parent link matters for
// deciding whether an interaction happened inside a component.
type Node struct {
	Name   string
	parent *Node
}

func NewNode(name string) *Node { return &Node{Name: name} }

// Append creates a child of n.
func (n *Node) Append(name string) *Node {
	return &Node{Name: name, parent: n}
}

func (n *Node) Parent() *Node { return n.parent }

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

type InteractionKind uint8

const (
	// PointerDown is the start of a click or tap.
	PointerDown InteractionKind = iota
	// Activate is a completed click, tap or keyboard activation.
	Activate
)

// Interaction is one discrete user interaction on the host surface.
type Interaction struct {
	Kind   InteractionKind
	Target *Node
}

// Listener receives interactions. It must not call Dispatch.
type Listener func(Interaction)

// Surface is the host that interactions originate from.
type Surface interface {
	Listen(l Listener) (release func())
}

// Dispatcher is a Surface that delivers interactions to its listeners one
// at a time, in registration order.
type Dispatcher struct {
	dispatchMu sync.Mutex

	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]Listener
	order     []uint64
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[uint64]Listener)}
}

func (d *Dispatcher) Listen(l Listener) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = l
	d.order = append(d.order, id)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *Dispatcher) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.listeners, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Dispatch delivers in to every listener registered when the call starts.
// Listeners released during delivery are skipped.
func (d *Dispatcher) Dispatch(in Interaction) {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	ids := make([]uint64, len(d.order))
	copy(ids, d.order)
	d.mu.Unlock()

	for _, id := range ids {
		d.mu.Lock()
		l, ok := d.listeners[id]
		d.mu.Unlock()
		if ok {
			l(in)
		}
	}
}

// Watch registers a listener covering the whole surface that calls
// onOutside once for every pointer-down whose target lies outside
// boundary. The returned func deregisters it and may be called repeatedly.
func Watch(s Surface, boundary *Node, onOutside func()) func() {
	return s.Listen(func(in Interaction) {
		if in.Kind != PointerDown {
			return
		}
		if boundary.Contains(in.Target) {
			return
		}
		onOutside()
	})
}
