package sdk

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ReasonCode is the flattened key of a RecordingError, e.g.
// "alignment.notCentered.left".
type ReasonCode string

// reasonText maps every displayable failure reason to the sentence fragment
// shown after "Test failed because". Codes missing here render as "".
var reasonText = map[ReasonCode]string{
	"interrupted":                 "the recording was interrupted",
	"alignment.noFaceTracked":     "there was no face in the frame",
	"alignment.tooFarAway":        "the phone was held too far away",
	"alignment.noAttention":       "the user was not looking at the display",
	"alignment.blink":             "the user blinked too much",
	"alignment.notCentered.down":  "the phone was held too low",
	"alignment.notCentered.up":    "the phone was held too high",
	"alignment.notCentered.left":  "the phone was held too far to the left",
	"alignment.notCentered.right": "the phone was held too far to the right",
	"alignment.headTilted.up":     "the user looked up",
	"alignment.headTilted.down":   "the user looked down",
	"alignment.headTilted.left":   "the user looked left",
	"alignment.headTilted.right":  "the user looked right",
}

var (
	alignmentKinds = map[AlignmentKind]bool{
		AlignmentOK: true, AlignmentNoFaceTracked: true, AlignmentTooFarAway: true,
		AlignmentNoAttention: true, AlignmentBlink: true, AlignmentNotCentered: true,
		AlignmentHeadTilted: true,
	}
	directions = map[Direction]bool{
		DirectionNone: true, DirectionUp: true, DirectionDown: true,
		DirectionLeft: true, DirectionRight: true,
	}
)

// Code flattens the error into its lookup key.
func (e RecordingError) Code() ReasonCode {
	switch e.Kind {
	case RecordingInterrupted:
		return "interrupted"
	case RecordingAlignment:
		a := e.Alignment
		if a.Kind == AlignmentNotCentered || a.Kind == AlignmentHeadTilted {
			dir := a.Direction
			if dir == "" {
				dir = DirectionNone
			}
			return ReasonCode(fmt.Sprintf("alignment.%s.%s", a.Kind, dir))
		}
		return ReasonCode("alignment." + string(a.Kind))
	default:
		return ReasonCode(e.Kind)
	}
}

// ReasonString returns the human readable reason for e, or "" when the reason
// has no sentence.
func ReasonString(e RecordingError) string {
	return reasonText[e.Code()]
}

// Describe returns the failure reason carried by err, which may hold a
// RecordingFailedError or a pointer to one. Errors that are not recording
// failures describe as "".
func Describe(err error) string {
	var rf RecordingFailedError
	if errors.As(err, &rf) {
		return ReasonString(rf.Reason)
	}
	var prf *RecordingFailedError
	if errors.As(err, &prf) && prf != nil {
		return ReasonString(prf.Reason)
	}
	return ""
}

// ReasonCodes lists every code that has a sentence, sorted.
func ReasonCodes() []ReasonCode {
	out := make([]ReasonCode, 0, len(reasonText))
	for code := range reasonText {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseReasonCode is the inverse of RecordingError.Code.
func ParseReasonCode(code string) (RecordingError, error) {
	parts := strings.Split(strings.TrimSpace(code), ".")
	switch {
	case len(parts) == 1 && parts[0] == string(RecordingInterrupted):
		return Interrupted(), nil
	case parts[0] != string(RecordingAlignment) || len(parts) < 2 || len(parts) > 3:
		return RecordingError{}, fmt.Errorf("unknown reason code %q", code)
	}
	kind := AlignmentKind(parts[1])
	if !alignmentKinds[kind] {
		return RecordingError{}, fmt.Errorf("unknown alignment kind %q", parts[1])
	}
	dir := DirectionNone
	if len(parts) == 3 {
		if kind != AlignmentNotCentered && kind != AlignmentHeadTilted {
			return RecordingError{}, fmt.Errorf("alignment kind %q takes no direction", kind)
		}
		dir = Direction(parts[2])
		if !directions[dir] {
			return RecordingError{}, fmt.Errorf("unknown direction %q", parts[2])
		}
	}
	if kind != AlignmentNotCentered && kind != AlignmentHeadTilted {
		dir = ""
	}
	return Misaligned(kind, dir), nil
}
