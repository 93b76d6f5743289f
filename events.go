package telemship

import "github.com/edge-labs/telemship/internal/app"

// State represents the lifecycle state of a Telemship instance.
type State int

const (
	// StateStopped means the agent is not running.
	StateStopped State = iota
	// StateStarting means Start() was called and the pipeline is coming up.
	StateStarting
	// StateRunning means the pipeline is publishing telemetry.
	StateRunning
	// StateStopping means Stop() was called and shutdown is in progress.
	StateStopping
	// StateCrashed means the pipeline terminated with an error.
	StateCrashed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Phase is the supervisor pipeline phase.
type Phase = app.Phase

// Re-exported pipeline phases.
const (
	PhaseBooting      = app.PhaseBooting
	PhaseAwaitingLink = app.PhaseAwaitingLink
	PhaseRunning      = app.PhaseRunning
	PhaseBackoff      = app.PhaseBackoff
	PhaseFatalRestart = app.PhaseFatalRestart
)

// CycleResult is the outcome of a single measure-and-publish cycle.
type CycleResult = app.CycleResult

// Re-exported cycle outcomes.
const (
	CyclePublished        = app.CyclePublished
	CycleSensorReadFailed = app.CycleSensorReadFailed
	CycleNotConnected     = app.CycleNotConnected
	CyclePublishFailed    = app.CyclePublishFailed
)

// StateChangeEvent is emitted on lifecycle state transitions.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// CycleEvent is emitted after each measure-and-publish cycle.
type CycleEvent struct {
	Result CycleResult
}

// PhaseChangeEvent is emitted when the supervisor changes phase.
type PhaseChangeEvent struct {
	Previous Phase
	Current  Phase
}

// EventHandler receives notifications about agent operations.
// Methods are called synchronously from the pipeline goroutine; handlers
// must not block.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnCycle(event CycleEvent)
	OnPhaseChange(event PhaseChangeEvent)
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnCycle(result app.CycleResult) {
	if e.handler == nil {
		return
	}
	e.handler.OnCycle(CycleEvent{Result: result})
}

func (e *eventEmitterWrapper) OnPhaseChange(previous, current app.Phase) {
	if e.handler == nil {
		return
	}
	e.handler.OnPhaseChange(PhaseChangeEvent{Previous: previous, Current: current})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
