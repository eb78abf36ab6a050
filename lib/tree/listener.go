package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

type EventKind uint8

const (
	EventRotate EventKind = iota
	EventRecolor
	EventInsert
	EventDelete
)

func (kind EventKind) String() string {
	switch kind {
	case EventRotate:
		return "rotate"
	case EventRecolor:
		return "recolor"
	case EventInsert:
		return "insert"
	case EventDelete:
		return "delete"
	default:
	}
	return "unknown"
}

// Event describes a single structural change.
//
//	EventRotate: Key is the pivot moved down, Dir is the rotate direction.
//	EventRecolor: Key is the repainted node, Color is the new color.
//	EventInsert, EventDelete: Key is the inserted or removed key.
type Event[K infra.OrderedKey] struct {
	Kind  EventKind
	Key   K
	Dir   Direction
	Color RBColor
}

// Listener observes structural changes synchronously, inside the
// tree operation. It must not call back into the tree.
type Listener[K infra.OrderedKey] interface {
	OnEvent(ev Event[K])
}

type ListenerFunc[K infra.OrderedKey] func(ev Event[K])

func (fn ListenerFunc[K]) OnEvent(ev Event[K]) {
	fn(ev)
}

type multiListener[K infra.OrderedKey] []Listener[K]

func (ml multiListener[K]) OnEvent(ev Event[K]) {
	for _, l := range ml {
		l.OnEvent(ev)
	}
}
