package sound

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

// DefaultVoice is the Azure neural voice used for announcements.
const DefaultVoice = "en-US-AvaNeural"

// speechFormat is headerless PCM at the player's rate and channel count.
const speechFormat = "raw-24khz-16bit-mono-pcm"

// TTSOption configures the speech client.
type TTSOption func(*TTS)

// WithVoice sets the synthesis voice.
func WithVoice(voice string) TTSOption {
	return func(t *TTS) {
		if strings.TrimSpace(voice) != "" {
			t.voice = voice
		}
	}
}

// WithEndpoint overrides the synthesis URL.
func WithEndpoint(url string) TTSOption {
	return func(t *TTS) {
		t.endpoint = url
	}
}

// WithHTTPTimeout sets the request timeout.
func WithHTTPTimeout(d time.Duration) TTSOption {
	return func(t *TTS) {
		if d > 0 {
			t.client.Timeout = d
		}
	}
}

// TTS synthesizes speech with Azure Cognitive Services. Audio is cached in
// memory by text.
type TTS struct {
	key      string
	endpoint string
	voice    string
	client   *http.Client
	log      *logger.Logger

	mu    sync.Mutex
	cache map[string][]byte
}

// NewTTS creates a speech client for the given subscription key and region.
func NewTTS(key, region string, log *logger.Logger, opts ...TTSOption) *TTS {
	t := &TTS{
		key:      key,
		endpoint: fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region),
		voice:    DefaultVoice,
		client:   &http.Client{Timeout: 15 * time.Second},
		log:      log,
		cache:    make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Voice returns the configured voice name.
func (t *TTS) Voice() string { return t.voice }

// Synthesize returns 16-bit mono PCM for text.
func (t *TTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	t.mu.Lock()
	if pcm, ok := t.cache[text]; ok {
		t.mu.Unlock()
		t.log.Debug("tts: cache hit (%d chars)", len(text))
		return pcm, nil
	}
	t.mu.Unlock()

	body, err := t.ssml(text)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", t.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", speechFormat)
	req.Header.Set("User-Agent", "cookbook/0.1")

	t.log.Debug("tts: synthesizing %d chars with voice %s", len(text), t.voice)
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("azure tts error %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio data: %w", err)
	}

	t.mu.Lock()
	t.cache[text] = pcm
	t.mu.Unlock()

	t.log.Debug("tts: got %d bytes of audio", len(pcm))
	return pcm, nil
}

func (t *TTS) ssml(text string) (string, error) {
	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return "", fmt.Errorf("escaping text: %w", err)
	}
	return fmt.Sprintf(
		`<speak version='1.0' xml:lang='en-US'><voice xml:lang='en-US' name='%s'>%s</voice></speak>`,
		t.voice, escaped.String(),
	), nil
}

// Announcer speaks short messages through the player.
type Announcer struct {
	tts    *TTS
	player *Player
	log    *logger.Logger
}

// NewAnnouncer pairs a speech client with a player. A nil player makes Say
// report ErrNoAudio.
func NewAnnouncer(tts *TTS, player *Player, log *logger.Logger) *Announcer {
	return &Announcer{tts: tts, player: player, log: log}
}

// Say synthesizes text and blocks until it has been spoken.
func (a *Announcer) Say(ctx context.Context, text string) error {
	if a.player == nil {
		return ErrNoAudio
	}
	pcm, err := a.tts.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	return a.player.Play(ctx, pcm)
}
