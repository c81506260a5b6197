package level

import "github.com/skyraid/skyraid/internal/core/event"

// State is a level lifecycle state.
type State uint8

const (
	Running State = iota
	Paused
	Completed
	Lost
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// Terminal reports whether no transition can leave s.
func (s State) Terminal() bool { return s == Completed || s == Lost }

// StateMachine tracks one level instance's lifecycle:
//
//	Running <-> Paused
//	Running  -> Completed | Lost   (terminal)
//
// Illegal requests are no-ops. A terminal machine is never reused; a new
// level builds a new one.
type StateMachine struct {
	name  string
	state State
	win   Predicate
	lose  Predicate
	bus   *event.Bus
}

// NewStateMachine starts in Running. bus may be nil.
func NewStateMachine(name string, win, lose Predicate, bus *event.Bus) *StateMachine {
	if win == nil || lose == nil {
		panic("level: state machine needs both win and loss predicates")
	}
	return &StateMachine{name: name, state: Running, win: win, lose: lose, bus: bus}
}

func (m *StateMachine) State() State { return m.state }

// Evaluate checks the loss predicate, then the win predicate. Loss takes
// priority when both hold in the same tick. Only acts while Running.
func (m *StateMachine) Evaluate(s Stats) State {
	if m.state != Running {
		return m.state
	}
	switch {
	case m.lose(s):
		m.state = Lost
		m.emit(event.LevelLost{Level: m.name, Score: s.Score})
	case m.win(s):
		m.state = Completed
		m.emit(event.LevelCompleted{Level: m.name, Score: s.Score})
	}
	return m.state
}

// Pause moves Running to Paused and reports whether it did.
func (m *StateMachine) Pause() bool {
	if m.state != Running {
		return false
	}
	m.state = Paused
	m.emit(event.LevelPaused{Level: m.name})
	return true
}

// Resume moves Paused to Running and reports whether it did.
func (m *StateMachine) Resume() bool {
	if m.state != Paused {
		return false
	}
	m.state = Running
	m.emit(event.LevelResumed{Level: m.name})
	return true
}

func (m *StateMachine) emit(ev any) {
	if m.bus != nil {
		event.Emit(m.bus, ev)
	}
}
