package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jask/quickstart/internal/sdk"
)

// SupportReport is the outcome of both status queries.
type SupportReport struct {
	Device  sdk.DeviceStatus
	Version sdk.VersionStatus
}

// SupportService runs the start-screen status queries. It never fails: query
// errors are folded into the returned statuses.
type SupportService struct {
	Checker sdk.SupportChecker
	Version string
	Log     zerolog.Logger
}

// Device queries device support. A failed query is reported as a network error.
func (s *SupportService) Device(ctx context.Context) sdk.DeviceStatus {
	ds, err := s.Checker.CheckDeviceSupport(ctx)
	if err != nil {
		s.Log.Warn().Err(err).Msg("device support query failed")
	}
	st := sdk.DeviceStatusFrom(ds, err)
	s.Log.Debug().Str("state", string(st.State)).Str("device", st.Device).Msg("device support")
	return st
}

// SDKVersion queries version support. A failed query is treated as supported
// so a flaky backend never blocks a test; the status is flagged Unverified.
func (s *SupportService) SDKVersion(ctx context.Context, apiKey string) sdk.VersionStatus {
	vs, err := s.Checker.CheckSDKVersionSupport(ctx, apiKey)
	if err != nil {
		s.Log.Warn().Err(err).Str("version", s.Version).Msg("sdk version query failed, assuming supported")
	}
	st := sdk.VersionStatusFrom(s.Version, vs, err)
	if st.State == sdk.StateUnsupported {
		s.Log.Info().Str("version", s.Version).Strs("supported", st.Supported).Msg("sdk version not supported")
	}
	return st
}

// Check runs both queries concurrently.
func (s *SupportService) Check(ctx context.Context, apiKey string) SupportReport {
	var rep SupportReport
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rep.Device = s.Device(gctx)
		return nil
	})
	g.Go(func() error {
		rep.Version = s.SDKVersion(gctx, apiKey)
		return nil
	})
	// Both queries fold their errors into the statuses, so Wait only joins.
	_ = g.Wait()
	return rep
}
