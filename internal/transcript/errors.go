package transcript

import (
	"errors"
	"fmt"
)

// ErrFormat reports a stream with no recognizable cue structure.
// Parsing never returns partial results alongside it.
var ErrFormat = errors.New("transcript: no recognizable cue structure")

// TimeFormatError reports a malformed cue timestamp. It names the
// offending cue so the failure is traceable; the whole parse fails.
type TimeFormatError struct {
	Cue   int
	Value string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("transcript: cue %d has malformed timestamp %q", e.Cue, e.Value)
}
