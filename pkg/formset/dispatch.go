package formset

import "fmt"

// Action is the command an event maps to.
type Action int

const (
	ActionNone Action = iota
	ActionAppend
	ActionRemoveLast
	ActionValidate
)

func (a Action) String() string {
	switch a {
	case ActionAppend:
		return "append"
	case ActionRemoveLast:
		return "remove-last"
	case ActionValidate:
		return "validate"
	case ActionNone:
		return "none"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Dispatcher maps events to actions. Click targets are matched by class
// along the event path at dispatch time, so buttons added after the page
// loaded (cloned blocks) are handled like the original ones.
type Dispatcher struct {
	AddClass    string
	RemoveClass string
}

// NewDispatcher returns a dispatcher using the layout's click classes.
func NewDispatcher(layout Layout) Dispatcher {
	return Dispatcher{AddClass: layout.AddClass, RemoveClass: layout.RemoveClass}
}

// Handle classifies ev. It does not mutate anything.
func (d Dispatcher) Handle(ev *Event) Action {
	if ev == nil {
		return ActionNone
	}
	switch ev.Type {
	case EventKeyUp, EventSubmit:
		return ActionValidate
	case EventClick:
		for _, el := range ev.Path {
			if el == nil {
				continue
			}
			if HasClass(el, d.AddClass) {
				return ActionAppend
			}
			if HasClass(el, d.RemoveClass) {
				return ActionRemoveLast
			}
		}
	}
	return ActionNone
}
