package recipe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// maxTimestamp bounds parsed offsets at one day. Longer values read as 0.
const maxTimestamp = 24 * 60 * 60

// ParseTimestamp converts "MM:SS", "HH:MM:SS" or a plain number of seconds
// into whole seconds. Input that does not start with an integer yields 0.
func ParseTimestamp(s string) int {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")

	switch len(parts) {
	case 2, 3:
		total := 0
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > maxTimestamp {
				return 0
			}
			total = total*60 + n
			if total > maxTimestamp {
				return 0
			}
		}
		return total
	default:
		return leadingInt(s)
	}
}

// leadingInt returns the non-negative integer at the start of s, or 0. A
// value above maxTimestamp also yields 0.
func leadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > maxTimestamp {
			return 0
		}
	}
	return n
}

// NewVideoWindow builds a step's video window from raw start/end values.
// An empty end leaves the window open.
func NewVideoWindow(start, end string) *domain.VideoWindow {
	w := &domain.VideoWindow{
		Start: time.Duration(ParseTimestamp(start)) * time.Second,
	}
	if end = strings.TrimSpace(end); end != "" {
		if secs := ParseTimestamp(end); secs > 0 {
			w.End = time.Duration(secs) * time.Second
			w.HasEnd = true
		}
	}
	return w
}

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// YouTubeID extracts the video id from a watch, short, or embed URL, or a
// bare 11-character id. Returns "" when nothing matches.
func YouTubeID(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// EmbedURL returns the embeddable player URL for a step's video window,
// or "" when the recipe has no usable video or the step has no window.
func EmbedURL(videoURL string, w *domain.VideoWindow) string {
	if w == nil {
		return ""
	}
	id := YouTubeID(videoURL)
	if id == "" {
		return ""
	}

	u := fmt.Sprintf("https://www.youtube.com/embed/%s?start=%d", id, w.StartSeconds())
	if w.HasEnd {
		u += fmt.Sprintf("&end=%d", w.EndSeconds())
	}
	return u + "&rel=0&modestbranding=1"
}

// FormatTimestamp renders seconds as MM:SS, or H:MM:SS past the hour.
func FormatTimestamp(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
