package transcript

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Entry is one normalized caption cue. Immutable once parsed.
type Entry struct {
	StartSeconds float64
	EndSeconds   float64
	Text         string
	Speaker      string
}

var (
	reVoiceTag = regexp.MustCompile(`^<v\s+([^>]+)>\s*(.*)$`)
	reSpeaker  = regexp.MustCompile(`(?i)^Speaker\s+(\w+):\s*(.*)$`)
	reInitial  = regexp.MustCompile(`^([A-Z]):\s*(.*)$`)
	reBracket  = regexp.MustCompile(`^\[([^\]]+)\]:\s*(.*)$`)

	// HH:MM:SS.mmm with optional hours and either . or , before millis
	reTimestamp = regexp.MustCompile(`^(?:(\d{1,2}):)?(\d{1,2}):(\d{2})(?:[.,](\d{1,3}))?$`)
)

// Parse converts WebVTT (or SRT) cue text into ordered entries.
// Entries are sorted by start time on ingest; downstream components
// treat non-decreasing start order as an invariant. A stream without a
// single cue fails with ErrFormat; a malformed timestamp fails the whole
// parse with a TimeFormatError naming the cue.
func Parse(content string) ([]Entry, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var entries []Entry
	cueCount := 0

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, "-->") {
			continue
		}
		cueCount++

		start, end, err := parseCueTiming(line, cueCount)
		if err != nil {
			return nil, err
		}

		// Collect cue text until the next blank line
		var textParts []string
		for i++; i < len(lines); i++ {
			text := strings.TrimSpace(lines[i])
			if text == "" {
				break
			}
			textParts = append(textParts, text)
		}

		speaker, text := extractSpeaker(strings.Join(textParts, " "))
		if text == "" {
			continue
		}

		entries = append(entries, Entry{
			StartSeconds: start,
			EndSeconds:   end,
			Text:         text,
			Speaker:      speaker,
		})
	}

	if cueCount == 0 {
		return nil, fmt.Errorf("%w (no cue timing lines found)", ErrFormat)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].StartSeconds < entries[b].StartSeconds
	})

	return entries, nil
}

// parseCueTiming parses a "start --> end" line. Trailing cue settings
// (e.g. "align:start") are ignored.
func parseCueTiming(line string, cue int) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, &TimeFormatError{Cue: cue, Value: line}
	}

	startStr := strings.TrimSpace(parts[0])
	endFields := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endFields) == 0 {
		return 0, 0, &TimeFormatError{Cue: cue, Value: line}
	}
	endStr := endFields[0]

	start, err := parseTimestamp(startStr)
	if err != nil {
		return 0, 0, &TimeFormatError{Cue: cue, Value: startStr}
	}
	end, err := parseTimestamp(endStr)
	if err != nil {
		return 0, 0, &TimeFormatError{Cue: cue, Value: endStr}
	}
	if end < start {
		return 0, 0, &TimeFormatError{Cue: cue, Value: line}
	}

	return start, end, nil
}

func parseTimestamp(s string) (float64, error) {
	m := reTimestamp.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	hours := 0
	if m[1] != "" {
		hours, _ = strconv.Atoi(m[1])
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	millis := 0
	if m[4] != "" {
		// Right-pad so ".19" means 190ms, not 19ms
		frac := m[4] + strings.Repeat("0", 3-len(m[4]))
		millis, _ = strconv.Atoi(frac)
	}

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000, nil
}

// extractSpeaker scans the cue text against the ordered speaker-label
// patterns; the first match wins. Without a match the trimmed text is
// kept verbatim with no speaker.
func extractSpeaker(text string) (string, string) {
	text = strings.TrimSpace(text)

	if m := reVoiceTag.FindStringSubmatch(text); m != nil {
		clean := strings.TrimSpace(strings.TrimSuffix(m[2], "</v>"))
		return strings.TrimSpace(m[1]), clean
	}
	if m := reSpeaker.FindStringSubmatch(text); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	if m := reInitial.FindStringSubmatch(text); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	if m := reBracket.FindStringSubmatch(text); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}

	return "", text
}

// SecondsToClock renders a seconds offset as HH:MM for block labels.
func SecondsToClock(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// TotalDuration returns the end time of the last entry in seconds.
func TotalDuration(entries []Entry) float64 {
	total := 0.0
	for _, e := range entries {
		if e.EndSeconds > total {
			total = e.EndSeconds
		}
	}
	return total
}
