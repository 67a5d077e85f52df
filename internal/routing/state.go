package routing

// State is a step of the routing state machine
type State int

const (
	StateSelecting State = iota
	StateSingleModel
	StateEnsemble
	StateRuleFallback
	StateDone
)

var stateNames = [...]string{"SELECTING", "SINGLE_MODEL", "ENSEMBLE", "RULE_FALLBACK", "DONE"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "INVALID"
	}
	return stateNames[s]
}

// transitions lists the legal successors of each state
var transitions = map[State][]State{
	StateSelecting:    {StateSingleModel, StateEnsemble, StateRuleFallback},
	StateSingleModel:  {StateEnsemble, StateDone},
	StateEnsemble:     {StateRuleFallback, StateDone},
	StateRuleFallback: {StateDone},
}

// CanTransition reports whether from → to is a legal step
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TraceStrings renders a trace for the assessment payload
func TraceStrings(trace []State) []string {
	out := make([]string, len(trace))
	for i, s := range trace {
		out[i] = s.String()
	}
	return out
}
