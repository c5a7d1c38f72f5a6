package revision

// State is a position in the transition state machine.
type State int32

const (
	StateIdle State = iota
	StateBackingUpPre
	StateValidating
	StateCommitting
	StateBackingUpPost
	StateReverting
	StateFailed
	StateDone
)

var stateNames = map[State]string{
	StateIdle:          "IDLE",
	StateBackingUpPre:  "BACKING_UP_PRE",
	StateValidating:    "VALIDATING",
	StateCommitting:    "COMMITTING",
	StateBackingUpPost: "BACKING_UP_POST",
	StateReverting:     "REVERTING",
	StateFailed:        "FAILED",
	StateDone:          "DONE",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
