// Package conversation turns typed commands into intents.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

// patternRule maps a regex to an intent. When the regex has a capture
// group, its first non-empty match becomes the payload.
type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(?:start|go|begin|cook|let'?s go)$`), domain.IntentStart},
		{regexp.MustCompile(`(?i)^(?:next|done|continue|n|advance)$`), domain.IntentAdvance},
		{regexp.MustCompile(`(?i)^(?:step|go to|goto|show|s)\s*(\d+)$`), domain.IntentJumpTo},
		{regexp.MustCompile(`^(\d{1,3})$`), domain.IntentJumpTo},
		{regexp.MustCompile(`(?i)^(?:prev|previous|back|b)$`), domain.IntentPrevious},
		{regexp.MustCompile(`(?i)^(?:current|here|c)$`), domain.IntentFocusCurrent},
		{regexp.MustCompile(`(?i)^(?:timer|t|set timer|start timer)(?:\s+(\d+)\s*(?:m|min|mins|minutes?)?)?$`), domain.IntentStartTimer},
		{regexp.MustCompile(`(?i)^(?:pause|resume|unpause|p)$`), domain.IntentToggleTimer},
		{regexp.MustCompile(`(?i)^(?:reset|restart|r)$`), domain.IntentResetTimer},
		{regexp.MustCompile(`(?i)^(?:close|dismiss|ok|got it|x)$`), domain.IntentCloseTimer},
		{regexp.MustCompile(`(?i)^(?:video|v|watch)$`), domain.IntentVideo},
		{regexp.MustCompile(`(?i)^(?:status|where|progress|info)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(?:summary|stats|results)$`), domain.IntentSummary},
		{regexp.MustCompile(`(?i)^(?:help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(?:quit|exit|q)$`), domain.IntentQuit},
	}
	return p
}

// Parse converts user input into an intent. The snapshot, when given, lets
// "next" start a session that has not started yet.
func (p *KeywordParser) Parse(ctx context.Context, input string, snap *domain.SessionSnapshot) (*domain.Intent, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		intent := &domain.Intent{Type: rule.intent}
		if len(m) > 1 {
			intent.Payload = m[1]
		}
		if intent.Type == domain.IntentAdvance && snap != nil && snap.Status == domain.SessionNotStarted {
			intent.Type = domain.IntentStart
		}

		p.log.Debug("matched intent: %s payload=%q", intent.Type, intent.Payload)
		return intent, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}
