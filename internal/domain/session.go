package domain

import "time"

// SessionStatus tracks the lifecycle of a cooking session. Transitions are
// linear: NotStarted -> InProgress -> Finished.
type SessionStatus int

const (
	SessionNotStarted SessionStatus = iota
	SessionInProgress
	SessionFinished
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionNotStarted:
		return "not_started"
	case SessionInProgress:
		return "in_progress"
	case SessionFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SessionSnapshot is a point-in-time copy of a cooking session's fields.
type SessionSnapshot struct {
	ID               string
	RecipeID         string
	RecipeTitle      string
	Status           SessionStatus
	CurrentStepIndex int
	FocusIndex       int
	StepCount        int
	StartedAt        time.Time
	StepStartedAt    time.Time
	FinishedAt       time.Time
	StepDurations    []time.Duration
	Elapsed          time.Duration
}

// Pace classifies actual cooking time against the recipe's declared time.
type Pace int

const (
	// PaceUnknown means the recipe declared no usable duration.
	PaceUnknown Pace = iota
	PaceFaster
	PaceOnTime
	PaceSlower
)

// String returns a human-readable pace.
func (p Pace) String() string {
	switch p {
	case PaceFaster:
		return "faster"
	case PaceOnTime:
		return "on_time"
	case PaceSlower:
		return "slower"
	default:
		return "unknown"
	}
}

// StepTiming is the elapsed time for one completed step.
type StepTiming struct {
	Title          string
	ElapsedSeconds int
}

// Summary is the performance summary of a finished session. It is derived
// state only and can always be recomputed from the session.
type Summary struct {
	RecipeID        string
	RecipeTitle     string
	TotalMinutes    int
	Steps           []StepTiming
	ExpectedMinutes int
	Delta           int // TotalMinutes - ExpectedMinutes, negative is faster
	Pace            Pace
}

// HasComparison reports whether the recipe declared a duration to compare against.
func (s Summary) HasComparison() bool {
	return s.ExpectedMinutes > 0
}
