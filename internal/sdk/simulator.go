package sdk

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SimulatorConfig configures the offline SDK stand-in.
type SimulatorConfig struct {
	Device            string
	SupportedDevices  []string
	Version           string
	SupportedVersions []string
	// Latency is applied to every call.
	Latency time.Duration
	// Offline makes both status queries fail with ErrNetwork.
	Offline bool
	// Failure, when set, is the reason every Record call fails with.
	Failure    *RecordingError
	Impairment bool
	Now        func() time.Time
}

// Simulator is an offline Facade. It mimics the SDK's call shapes and latency
// so the app can be exercised without the vendor library or a backend.
type Simulator struct {
	cfg SimulatorConfig
}

// NewSimulator returns a Simulator; zero-valued fields get workable defaults.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Device == "" {
		cfg.Device = "Simulator"
	}
	if cfg.Version == "" {
		cfg.Version = "0.0.0"
	}
	return &Simulator{cfg: cfg}
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.cfg.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.cfg.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Simulator) CheckDeviceSupport(ctx context.Context) (DeviceSupport, error) {
	if err := s.wait(ctx); err != nil {
		return DeviceSupport{}, err
	}
	if s.cfg.Offline {
		return DeviceSupport{}, fmt.Errorf("%w: simulator offline", ErrNetwork)
	}
	return DeviceSupport{
		IsCurrentSupported: len(s.cfg.SupportedDevices) == 0 || contains(s.cfg.SupportedDevices, s.cfg.Device),
		CurrentDevice:      s.cfg.Device,
		SupportedDevices:   s.cfg.SupportedDevices,
	}, nil
}

func (s *Simulator) CheckSDKVersionSupport(ctx context.Context, _ string) (VersionSupport, error) {
	if err := s.wait(ctx); err != nil {
		return VersionSupport{}, err
	}
	if s.cfg.Offline {
		return VersionSupport{}, fmt.Errorf("%w: simulator offline", ErrNetwork)
	}
	return VersionSupport{
		IsCurrentVersionSupported: len(s.cfg.SupportedVersions) == 0 || contains(s.cfg.SupportedVersions, s.cfg.Version),
		SupportedVersions:         s.cfg.SupportedVersions,
	}, nil
}

// Record simulates alignment and capture.
func (s *Simulator) Record(ctx context.Context, _ TestConfiguration) (Recording, error) {
	start := s.cfg.Now()
	if err := s.wait(ctx); err != nil {
		return Recording{}, RecordingFailedError{Reason: Interrupted()}
	}
	if s.cfg.Failure != nil {
		return Recording{}, RecordingFailedError{Reason: *s.cfg.Failure}
	}
	return Recording{
		ID:        uuid.NewString(),
		StartedAt: start.UTC(),
		Duration:  10 * time.Second,
		Frames:    300,
	}, nil
}

// Analyze simulates on-device inference over rec.
func (s *Simulator) Analyze(ctx context.Context, rec Recording) (Inference, error) {
	if err := s.wait(ctx); err != nil {
		return Inference{}, AnalysisFailedError{Err: err}
	}
	if rec.ID == "" {
		return Inference{}, AnalysisFailedError{Err: fmt.Errorf("empty recording")}
	}
	conf := 0.92
	if s.cfg.Impairment {
		conf = 0.81
	}
	return Inference{
		ID:            uuid.NewString(),
		RecordingID:   rec.ID,
		HasImpairment: s.cfg.Impairment,
		Confidence:    conf,
		CreatedAt:     s.cfg.Now().UTC(),
	}, nil
}
