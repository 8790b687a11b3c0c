package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentStart
	IntentAdvance
	IntentJumpTo   // payload: 1-based step number
	IntentPrevious // focus the previous step
	IntentFocusCurrent
	IntentStartTimer  // payload: optional minutes
	IntentToggleTimer // pause / resume the countdown
	IntentResetTimer
	IntentCloseTimer
	IntentVideo
	IntentStatus
	IntentSummary
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentStart:
		return "start"
	case IntentAdvance:
		return "advance"
	case IntentJumpTo:
		return "jump_to"
	case IntentPrevious:
		return "previous"
	case IntentFocusCurrent:
		return "focus_current"
	case IntentStartTimer:
		return "start_timer"
	case IntentToggleTimer:
		return "toggle_timer"
	case IntentResetTimer:
		return "reset_timer"
	case IntentCloseTimer:
		return "close_timer"
	case IntentVideo:
		return "video"
	case IntentStatus:
		return "status"
	case IntentSummary:
		return "summary"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. step number for jump_to
}
