package repository

import "time"

// Run is a saved test run.
type Run struct {
	ID               string
	CreatedAt        time.Time
	ShowInstructions bool
	AllowToSave      bool
	InferenceID      string
	HasImpairment    bool
	Confidence       float64
	RecordingID      string
	RecordedAt       time.Time
	Duration         time.Duration
	Frames           int
	// Feedback is nil until the user answered the feedback screen.
	Feedback   *bool
	FeedbackAt *time.Time
}
