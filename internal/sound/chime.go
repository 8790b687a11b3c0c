package sound

import (
	"context"
	"encoding/binary"
	"errors"
	"math"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

// ErrNoAudio is returned when chiming without an audio device.
var ErrNoAudio = errors.New("no audio device")

// Tone is one sine note of the chime.
type Tone struct {
	Freq     float64 // Hz
	Offset   float64 // seconds from chime start
	Duration float64 // seconds
}

// Arpeggio is the completion chime: C5, E5, G5.
var Arpeggio = []Tone{
	{Freq: 523.25, Offset: 0, Duration: 0.2},
	{Freq: 659.25, Offset: 0.15, Duration: 0.2},
	{Freq: 783.99, Offset: 0.3, Duration: 0.4},
}

// Gain envelope: each tone decays exponentially between these levels.
const (
	startGain = 0.3
	endGain   = 0.01
)

// Synthesize renders tones as 16-bit little-endian mono PCM at SampleRate.
func Synthesize(tones []Tone) []byte {
	var length float64
	for _, t := range tones {
		if end := t.Offset + t.Duration; end > length {
			length = end
		}
	}

	n := int(math.Round(length * SampleRate))
	mix := make([]float64, n)
	for _, t := range tones {
		first := int(math.Round(t.Offset * SampleRate))
		count := int(math.Round(t.Duration * SampleRate))
		for i := 0; i < count && first+i < n; i++ {
			sec := float64(i) / SampleRate
			gain := startGain * math.Pow(endGain/startGain, sec/t.Duration)
			mix[first+i] += gain * math.Sin(2*math.Pi*t.Freq*sec)
		}
	}

	pcm := make([]byte, n*2)
	for i, v := range mix {
		v = math.Max(-1, math.Min(1, v))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(v*math.MaxInt16)))
	}
	return pcm
}

// Chime plays the completion arpeggio. It satisfies notify.Chimer.
type Chime struct {
	player *Player
	pcm    []byte
	log    *logger.Logger
}

// NewChime prepares the chime. A nil player makes Chime report ErrNoAudio.
func NewChime(player *Player, log *logger.Logger) *Chime {
	return &Chime{
		player: player,
		pcm:    Synthesize(Arpeggio),
		log:    log,
	}
}

// Chime plays the arpeggio and blocks until it finishes.
func (c *Chime) Chime(ctx context.Context) error {
	if c.player == nil {
		return ErrNoAudio
	}
	c.log.Debug("chime: playing")
	return c.player.Play(ctx, c.pcm)
}
