// Package sdk defines the boundary to the external analysis SDK: the status
// queries and recording/inference capability the app depends on, the
// failures it reports, and two stand-in implementations (an HTTP status
// client and an offline simulator).
package sdk

import (
	"context"
	"time"
)

// TestConfiguration controls how a test is presented. It is a value type and
// is never mutated after a test has been entered.
type TestConfiguration struct {
	ShowInstructions bool
	AllowToSave      bool
}

// DeviceSupport is the answer to a device support query.
type DeviceSupport struct {
	IsCurrentSupported bool     `json:"is_current_supported"`
	CurrentDevice      string   `json:"current_device"`
	SupportedDevices   []string `json:"supported_devices"`
}

// VersionSupport is the answer to an SDK version support query.
type VersionSupport struct {
	IsCurrentVersionSupported bool     `json:"is_current_version_supported"`
	SupportedVersions         []string `json:"supported_versions"`
}

// Recording is the raw capture session produced by Record.
type Recording struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Frames    int
}

// Inference is the analysis output produced by Analyze.
type Inference struct {
	ID            string
	RecordingID   string
	HasImpairment bool
	Confidence    float64
	CreatedAt     time.Time
}

// SupportChecker answers the two status queries shown on the start screen.
type SupportChecker interface {
	CheckDeviceSupport(ctx context.Context) (DeviceSupport, error)
	CheckSDKVersionSupport(ctx context.Context, apiKey string) (VersionSupport, error)
}

// Runner is the recording and inference capability invoked by a test.
type Runner interface {
	Record(ctx context.Context, cfg TestConfiguration) (Recording, error)
	Analyze(ctx context.Context, rec Recording) (Inference, error)
}

// Facade is everything the app needs from the SDK.
type Facade interface {
	SupportChecker
	Runner
}

type composite struct {
	SupportChecker
	Runner
}

// Compose builds a Facade from separate status and runner implementations.
func Compose(checker SupportChecker, runner Runner) Facade {
	return composite{SupportChecker: checker, Runner: runner}
}
