package form

// State is the controller lifecycle state.
type State int

const (
	// Editing is the initial state and the state after any edit.
	Editing State = iota
	// Submitted follows a successful Submit until the next edit.
	Submitted
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}
