package statemachine

// RequestKind tells how a transition was requested.
type RequestKind uint8

const (
	// KindTrigger requests the transition configured for a trigger.
	KindTrigger RequestKind = iota + 1
	// KindState requests the transition leading to a destination state.
	KindState
	// KindAutofire is issued by the machine itself after a committed transition.
	KindAutofire
)

func (k RequestKind) String() string {
	switch k {
	case KindTrigger:
		return "trigger"
	case KindState:
		return "state"
	case KindAutofire:
		return "autofire"
	default:
		return "unknown"
	}
}

// Request is a fire request. It is a closed set of variants: build trigger
// and state requests with Machine.ByTrigger and Machine.ByState. Autofire
// requests are only created by the machine.
type Request[S, T comparable, E any] struct {
	kind    RequestKind
	entity  E
	trigger T
	state   S
}

func (r Request[S, T, E]) Kind() RequestKind { return r.kind }
func (r Request[S, T, E]) Entity() E         { return r.entity }

// Trigger returns the requested trigger. Only meaningful for KindTrigger.
func (r Request[S, T, E]) Trigger() T { return r.trigger }

// State returns the requested destination. Only meaningful for KindState.
func (r Request[S, T, E]) State() S { return r.state }

// ByTrigger builds a request firing the transition configured for trigger.
func (m *Machine[S, T, E]) ByTrigger(entity E, trigger T) Request[S, T, E] {
	return Request[S, T, E]{kind: KindTrigger, entity: entity, trigger: trigger}
}

// ByState builds a request firing the transition that leads to destination.
func (m *Machine[S, T, E]) ByState(entity E, destination S) Request[S, T, E] {
	return Request[S, T, E]{kind: KindState, entity: entity, state: destination}
}

func autofireRequest[S, T comparable, E any](entity E) Request[S, T, E] {
	return Request[S, T, E]{kind: KindAutofire, entity: entity}
}
