package menu

// State is the highlighted position within a non-empty option list.
type State struct {
	Options     []string
	Highlighted int
}

func NewState(options []string) (State, error) {
	if len(options) == 0 {
		return State{}, ErrEmptyOptions
	}
	return State{Options: options}, nil
}

// Apply moves the highlight for up/down events, clamping at both ends, and
// reports whether the event confirmed the current option.
func (s *State) Apply(event Event) bool {
	switch event {
	case EventMoveUp:
		if s.Highlighted > 0 {
			s.Highlighted--
		}
	case EventMoveDown:
		if s.Highlighted < len(s.Options)-1 {
			s.Highlighted++
		}
	case EventConfirm:
		return true
	}
	return false
}
