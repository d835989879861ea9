package formset

// EventType names the UI events the formset reacts to.
type EventType string

const (
	EventClick  EventType = "click"
	EventKeyUp  EventType = "keyup"
	EventSubmit EventType = "submit"
)

// Event is a dispatched UI event. Path lists the target first followed by
// its ancestors, which is what delegated matching walks.
type Event struct {
	Type EventType
	Path []Element

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent builds an event targeting the first element of path.
func NewEvent(kind EventType, path ...Element) *Event {
	return &Event{Type: kind, Path: path}
}

// Target returns the element the event was dispatched to.
func (e *Event) Target() Element {
	if e == nil || len(e.Path) == 0 {
		return nil
	}
	return e.Path[0]
}

// PreventDefault cancels the event's default action (navigation, submit).
func (e *Event) PreventDefault() {
	if e != nil {
		e.defaultPrevented = true
	}
}

// StopPropagation keeps the event from reaching further handlers.
func (e *Event) StopPropagation() {
	if e != nil {
		e.propagationStopped = true
	}
}

func (e *Event) DefaultPrevented() bool {
	return e != nil && e.defaultPrevented
}

func (e *Event) PropagationStopped() bool {
	return e != nil && e.propagationStopped
}

// Cancelled reports whether the event was prevented and stopped.
func (e *Event) Cancelled() bool {
	return e.DefaultPrevented() && e.PropagationStopped()
}
