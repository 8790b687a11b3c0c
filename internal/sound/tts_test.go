package sound

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

func TestTTSSynthesize(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
		body  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "secret" {
			t.Errorf("key header = %q", got)
		}
		if got := r.Header.Get("X-Microsoft-OutputFormat"); got != speechFormat {
			t.Errorf("format header = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/ssml+xml" {
			t.Errorf("content type = %q", got)
		}
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = w.Write([]byte{1, 2, 3, 4})
	}))
	defer srv.Close()

	tts := NewTTS("secret", "westeurope", logger.New(logger.LevelOff, nil),
		WithEndpoint(srv.URL), WithVoice("en-GB-SoniaNeural"))

	pcm, err := tts.Synthesize(context.Background(), "Mac & cheese is up.")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(pcm) != 4 {
		t.Fatalf("expected 4 bytes, got %d", len(pcm))
	}
	if !strings.Contains(body, "Mac &amp; cheese is up.") {
		t.Fatalf("expected escaped text in SSML, got %q", body)
	}
	if !strings.Contains(body, "name='en-GB-SoniaNeural'") {
		t.Fatalf("expected voice in SSML, got %q", body)
	}

	if _, err := tts.Synthesize(context.Background(), "Mac & cheese is up."); err != nil {
		t.Fatalf("second Synthesize: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected cached second call, server saw %d", calls)
	}
}

func TestTTSServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tts := NewTTS("k", "r", logger.New(logger.LevelOff, nil), WithEndpoint(srv.URL))
	_, err := tts.Synthesize(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected 429 error, got %v", err)
	}
}

func TestTTSDefaultEndpoint(t *testing.T) {
	tts := NewTTS("k", "eastus", logger.New(logger.LevelOff, nil))
	if tts.endpoint != "https://eastus.tts.speech.microsoft.com/cognitiveservices/v1" {
		t.Fatalf("unexpected endpoint %q", tts.endpoint)
	}
	if tts.Voice() != DefaultVoice {
		t.Fatalf("unexpected voice %q", tts.Voice())
	}
}

func TestAnnouncerWithoutPlayer(t *testing.T) {
	a := NewAnnouncer(NewTTS("k", "r", logger.New(logger.LevelOff, nil)), nil, logger.New(logger.LevelOff, nil))
	if err := a.Say(context.Background(), "hi"); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("expected ErrNoAudio, got %v", err)
	}
}
