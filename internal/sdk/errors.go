package sdk

import (
	"errors"
	"fmt"
)

// ErrNetwork marks transport failures talking to the SDK backend.
var ErrNetwork = errors.New("sdk: network error")

// Error is the closed set of failures the SDK reports to the app.
type Error interface {
	error
	sdkError()
}

// RecordingFailedError is returned when a recording could not be completed.
type RecordingFailedError struct {
	Reason RecordingError
}

func (e RecordingFailedError) Error() string {
	return fmt.Sprintf("recording failed (%s)", e.Reason.Code())
}

func (RecordingFailedError) sdkError() {}

// AnalysisFailedError is returned when a finished recording could not be analysed.
type AnalysisFailedError struct {
	Err error
}

func (e AnalysisFailedError) Error() string {
	if e.Err == nil {
		return "analysis failed"
	}
	return "analysis failed: " + e.Err.Error()
}

func (e AnalysisFailedError) Unwrap() error { return e.Err }

func (AnalysisFailedError) sdkError() {}

// GenericError wraps any other failure surfaced by an SDK operation.
type GenericError struct {
	Op  string
	Err error
}

func (e GenericError) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return "sdk error"
	case e.Err == nil:
		return e.Op + " failed"
	case e.Op == "":
		return e.Err.Error()
	default:
		return e.Op + ": " + e.Err.Error()
	}
}

func (e GenericError) Unwrap() error { return e.Err }

func (GenericError) sdkError() {}

// AsError classifies err as an sdk.Error, wrapping unknown errors as GenericError.
func AsError(op string, err error) Error {
	if err == nil {
		return nil
	}
	var se Error
	if errors.As(err, &se) {
		return se
	}
	return GenericError{Op: op, Err: err}
}

// RecordingErrorKind enumerates why a recording stopped.
type RecordingErrorKind string

const (
	RecordingInterrupted RecordingErrorKind = "interrupted"
	RecordingAlignment   RecordingErrorKind = "alignment"
)

// AlignmentKind enumerates alignment states reported while positioning the face.
type AlignmentKind string

const (
	AlignmentOK            AlignmentKind = "ok"
	AlignmentNoFaceTracked AlignmentKind = "noFaceTracked"
	AlignmentTooFarAway    AlignmentKind = "tooFarAway"
	AlignmentNoAttention   AlignmentKind = "noAttention"
	AlignmentBlink         AlignmentKind = "blink"
	AlignmentNotCentered   AlignmentKind = "notCentered"
	AlignmentHeadTilted    AlignmentKind = "headTilted"
)

// Direction qualifies off-center and head-tilt alignment states.
type Direction string

const (
	DirectionNone  Direction = "none"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// AlignmentStatus is one alignment reading. Direction is only meaningful for
// AlignmentNotCentered and AlignmentHeadTilted.
type AlignmentStatus struct {
	Kind      AlignmentKind
	Direction Direction
}

// RecordingError describes why a recording failed.
type RecordingError struct {
	Kind      RecordingErrorKind
	Alignment AlignmentStatus
}

// Interrupted returns the interruption recording error.
func Interrupted() RecordingError {
	return RecordingError{Kind: RecordingInterrupted}
}

// Misaligned returns an alignment recording error.
func Misaligned(kind AlignmentKind, dir Direction) RecordingError {
	return RecordingError{Kind: RecordingAlignment, Alignment: AlignmentStatus{Kind: kind, Direction: dir}}
}
