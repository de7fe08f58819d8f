package order

import "errors"

var ErrUnknownState = errors.New("unknown order state")

type State string

const (
	StateRequested      State = "solicitado"
	StatePendingPayment State = "pendiente_pago"
	StatePaid           State = "pagado"
	StateCompleted      State = "completado"
	StateCanceled       State = "cancelado"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateRequested, StatePendingPayment, StatePaid, StateCompleted, StateCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted from s.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateCanceled
}

// transitions is the full edge table of the order workflow. Every state may
// be cancelled until it reaches a terminal state.
var transitions = map[State][]State{
	StateRequested:      {StatePendingPayment, StateCanceled},
	StatePendingPayment: {StatePaid, StateCanceled},
	StatePaid:           {StateCompleted, StateCanceled},
}

func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseState(raw string) (State, error) {
	s := State(raw)
	if !s.IsValid() {
		return "", ErrUnknownState
	}
	return s, nil
}

// ActiveStates lists the non-terminal states; a user may hold at most one
// order in any of them.
func ActiveStates() []State {
	return []State{StateRequested, StatePendingPayment, StatePaid}
}
