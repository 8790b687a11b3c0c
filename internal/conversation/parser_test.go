package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.IntentType
		wantPayload string
	}{
		// Start
		{"start", domain.IntentStart, ""},
		{"let's go", domain.IntentStart, ""},

		// Advance variants
		{"next", domain.IntentAdvance, ""},
		{"done", domain.IntentAdvance, ""},
		{"  N  ", domain.IntentAdvance, ""},

		// Jump
		{"step 3", domain.IntentJumpTo, "3"},
		{"go to 12", domain.IntentJumpTo, "12"},
		{"s2", domain.IntentJumpTo, "2"},
		{"4", domain.IntentJumpTo, "4"},
		{"prev", domain.IntentPrevious, ""},
		{"back", domain.IntentPrevious, ""},
		{"current", domain.IntentFocusCurrent, ""},

		// Countdown
		{"timer", domain.IntentStartTimer, ""},
		{"timer 5", domain.IntentStartTimer, "5"},
		{"t 10 min", domain.IntentStartTimer, "10"},
		{"set timer 8 minutes", domain.IntentStartTimer, "8"},
		{"pause", domain.IntentToggleTimer, ""},
		{"resume", domain.IntentToggleTimer, ""},
		{"reset", domain.IntentResetTimer, ""},
		{"dismiss", domain.IntentCloseTimer, ""},
		{"got it", domain.IntentCloseTimer, ""},

		// Info
		{"video", domain.IntentVideo, ""},
		{"status", domain.IntentStatus, ""},
		{"summary", domain.IntentSummary, ""},
		{"help", domain.IntentHelp, ""},
		{"?", domain.IntentHelp, ""},

		// Quit
		{"quit", domain.IntentQuit, ""},
		{"q", domain.IntentQuit, ""},

		// Unknown
		{"", domain.IntentUnknown, ""},
		{"make it spicier", domain.IntentUnknown, "make it spicier"},
		{"1234", domain.IntentUnknown, "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Fatalf("input=%q: expected %s, got %s", tt.input, tt.wantType, intent.Type)
			}
			if intent.Payload != tt.wantPayload {
				t.Fatalf("input=%q: expected payload %q, got %q", tt.input, tt.wantPayload, intent.Payload)
			}
		})
	}
}

func TestNextBeforeStartStarts(t *testing.T) {
	parser := NewKeywordParser(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	snap := &domain.SessionSnapshot{Status: domain.SessionNotStarted}
	intent, err := parser.Parse(ctx, "next", snap)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if intent.Type != domain.IntentStart {
		t.Fatalf("expected start, got %s", intent.Type)
	}

	snap.Status = domain.SessionInProgress
	intent, _ = parser.Parse(ctx, "next", snap)
	if intent.Type != domain.IntentAdvance {
		t.Fatalf("expected advance, got %s", intent.Type)
	}
}
