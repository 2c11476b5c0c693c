package dom

// The overlay listens for pointer and click events in the capture phase,
// so we model a document-level event dispatcher with both phases.
// Listeners attach to the document, not to individual nodes; the event
// carries the target node.

// Event is a dispatched document event.
type Event struct {
	Type   string
	Target *Node

	defaultPrevented bool
	stopped          bool
}

// PreventDefault suppresses the event's default action. The dispatching
// caller observes this through the return value of DispatchEvent.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether a listener suppressed the default.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation halts delivery to further listeners.
func (ev *Event) StopPropagation() { ev.stopped = true }

// EventHandler is a listener callback.
type EventHandler func(*Event)

// ListenerID identifies a registered listener for removal.
type ListenerID int

type listener struct {
	id      ListenerID
	typ     string
	capture bool
	fn      EventHandler
}

// AddEventListener registers a listener for an event type. Capture-phase
// listeners run before bubble-phase listeners.
func (d *Document) AddEventListener(typ string, capture bool, fn EventHandler) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextLID++
	d.listeners = append(d.listeners, &listener{id: d.nextLID, typ: typ, capture: capture, fn: fn})
	return d.nextLID
}

// RemoveEventListener removes a previously registered listener.
func (d *Document) RemoveEventListener(id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// DispatchEvent delivers an event to all matching listeners, capture
// phase first, and reports whether a listener suppressed the default
// action.
func (d *Document) DispatchEvent(ev *Event) (defaultPrevented bool) {
	d.mu.Lock()
	snapshot := make([]*listener, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.Unlock()

	for _, phase := range []bool{true, false} { // capture, then bubble
		for _, l := range snapshot {
			if ev.stopped {
				return ev.defaultPrevented
			}
			if l.typ == ev.Type && l.capture == phase {
				l.fn(ev)
			}
		}
	}
	return ev.defaultPrevented
}
