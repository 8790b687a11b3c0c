package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := New(tt.level, &buf)
		log.Debug("debug %d", 1)
		log.Info("info %d", 2)

		out := buf.String()
		if got := strings.Contains(out, "debug 1"); got != tt.wantDebug {
			t.Errorf("level %d: debug written=%v, want %v", tt.level, got, tt.wantDebug)
		}
		if got := strings.Contains(out, "info 2"); got != tt.wantInfo {
			t.Errorf("level %d: info written=%v, want %v", tt.level, got, tt.wantInfo)
		}
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)
	log.Error("hidden")

	log.SetLevel(LevelNormal)
	if log.GetLevel() != LevelNormal {
		t.Fatalf("expected LevelNormal, got %d", log.GetLevel())
	}
	log.Error("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("message logged while level was off")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "ERROR") {
		t.Fatalf("expected ERROR line, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{"off": LevelOff, "info": LevelNormal, "debug": LevelVerbose, "": LevelNormal} {
		got, ok := ParseLevel(name)
		if !ok || got != want {
			t.Errorf("ParseLevel(%q) = %d, %v; want %d", name, got, ok, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Error("expected unknown level to be rejected")
	}
}
