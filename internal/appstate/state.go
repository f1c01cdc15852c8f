// Package appstate holds the application navigation state and the store that
// owns it.
//
// State is a closed set: every case is a struct in this package implementing
// the unexported state marker, so switches over State only ever see the cases
// declared here.
package appstate

import "github.com/jask/quickstart/internal/sdk"

// State is the single value that decides which screen is shown.
type State interface {
	Kind() Kind
	state()
}

// Kind names a State case. It is stable and used in logs and persistence.
type Kind string

const (
	KindStart              Kind = "start"
	KindTest               Kind = "test"
	KindWaitingForAnalysis Kind = "waitingForAnalysis"
	KindResult             Kind = "result"
	KindError              Kind = "error"
	KindFeedback           Kind = "feedback"
)

// Start is the initial screen.
type Start struct{}

// Test is an active test. Config is fixed for the lifetime of the state.
type Test struct {
	Config sdk.TestConfiguration
}

// WaitingForAnalysis is shown while a finished recording is being analysed.
type WaitingForAnalysis struct {
	Config    sdk.TestConfiguration
	Recording sdk.Recording
}

// Result carries a finished analysis.
type Result struct {
	Config    sdk.TestConfiguration
	Inference sdk.Inference
	Recording sdk.Recording
	// RunID is set when the run was saved.
	RunID string
}

// Error carries the failure that ended a test.
type Error struct {
	Err sdk.Error
}

// Feedback asks the user about a result.
type Feedback struct {
	Inference sdk.Inference
	Recording sdk.Recording
	RunID     string
}

func (Start) Kind() Kind              { return KindStart }
func (Test) Kind() Kind               { return KindTest }
func (WaitingForAnalysis) Kind() Kind { return KindWaitingForAnalysis }
func (Result) Kind() Kind             { return KindResult }
func (Error) Kind() Kind              { return KindError }
func (Feedback) Kind() Kind           { return KindFeedback }

func (Start) state()              {}
func (Test) state()               {}
func (WaitingForAnalysis) state() {}
func (Result) state()             {}
func (Error) state()              {}
func (Feedback) state()           {}
