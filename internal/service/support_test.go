package service

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jask/quickstart/internal/sdk"
)

type fakeChecker struct {
	device     sdk.DeviceSupport
	deviceErr  error
	version    sdk.VersionSupport
	versionErr error
	delay      time.Duration
	inFlight   atomic.Int32
	maxFlight  atomic.Int32
	gotKey     atomic.Value
}

func (f *fakeChecker) enter() func() {
	n := f.inFlight.Add(1)
	for {
		m := f.maxFlight.Load()
		if n <= m || f.maxFlight.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(f.delay)
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeChecker) CheckDeviceSupport(context.Context) (sdk.DeviceSupport, error) {
	defer f.enter()()
	return f.device, f.deviceErr
}

func (f *fakeChecker) CheckSDKVersionSupport(_ context.Context, apiKey string) (sdk.VersionSupport, error) {
	defer f.enter()()
	f.gotKey.Store(apiKey)
	return f.version, f.versionErr
}

func newSupport(c sdk.SupportChecker) *SupportService {
	return &SupportService{Checker: c, Version: "2.4.0", Log: zerolog.New(io.Discard)}
}

func TestSupportCheckAllSupported(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := &fakeChecker{
		device:  sdk.DeviceSupport{IsCurrentSupported: true, CurrentDevice: "iPhone14,2"},
		version: sdk.VersionSupport{IsCurrentVersionSupported: true, SupportedVersions: []string{"2.4.0"}},
		delay:   20 * time.Millisecond,
	}
	rep := newSupport(c).Check(context.Background(), "key")

	require.Equal(t, sdk.DeviceStatus{State: sdk.StateSupported, Device: "iPhone14,2"}, rep.Device)
	require.Equal(t, sdk.StateSupported, rep.Version.State)
	require.False(t, rep.Version.Unverified)
	require.Equal(t, "key", c.gotKey.Load())
	require.EqualValues(t, 2, c.maxFlight.Load(), "queries should run concurrently")
}

func TestSupportVersionNetworkErrorFailsOpen(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := &fakeChecker{
		device:     sdk.DeviceSupport{IsCurrentSupported: true, CurrentDevice: "iPhone14,2"},
		versionErr: sdk.ErrNetwork,
	}
	rep := newSupport(c).Check(context.Background(), "")

	require.Equal(t, sdk.StateSupported, rep.Version.State)
	require.True(t, rep.Version.Unverified)
	require.Equal(t, "2.4.0", rep.Version.Version)
}

func TestSupportUnsupportedDeviceIsInformational(t *testing.T) {
	c := &fakeChecker{
		device:  sdk.DeviceSupport{IsCurrentSupported: false, CurrentDevice: "DeviceX", SupportedDevices: []string{"DeviceY"}},
		version: sdk.VersionSupport{IsCurrentVersionSupported: false, SupportedVersions: []string{"3.0.0"}},
	}
	s := newSupport(c)

	dev := s.Device(context.Background())
	require.Equal(t, sdk.DeviceStatus{State: sdk.StateUnsupported, Device: "DeviceX", Nearest: "DeviceY"}, dev)

	ver := s.SDKVersion(context.Background(), "k")
	require.Equal(t, sdk.StateUnsupported, ver.State)
	require.Equal(t, []string{"3.0.0"}, ver.Supported)
}

func TestSupportDeviceNetworkError(t *testing.T) {
	c := &fakeChecker{deviceErr: sdk.ErrNetwork}
	require.Equal(t, sdk.StateNetworkError, newSupport(c).Device(context.Background()).State)
}

func TestSupportWithSimulator(t *testing.T) {
	sim := sdk.NewSimulator(sdk.SimulatorConfig{Offline: true})
	rep := newSupport(sim).Check(context.Background(), "")
	require.Equal(t, sdk.StateNetworkError, rep.Device.State)
	require.Equal(t, sdk.StateSupported, rep.Version.State)
	require.True(t, rep.Version.Unverified)
}

type ctxChecker struct{ versionCtxErr error }

func (c *ctxChecker) CheckDeviceSupport(context.Context) (sdk.DeviceSupport, error) {
	return sdk.DeviceSupport{}, sdk.ErrNetwork
}

func (c *ctxChecker) CheckSDKVersionSupport(ctx context.Context, _ string) (sdk.VersionSupport, error) {
	time.Sleep(20 * time.Millisecond)
	c.versionCtxErr = ctx.Err()
	return sdk.VersionSupport{IsCurrentVersionSupported: true}, nil
}

func TestSupportFailedQueryDoesNotCancelTheOther(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := &ctxChecker{}
	rep := newSupport(c).Check(context.Background(), "key")

	require.Equal(t, sdk.StateNetworkError, rep.Device.State)
	require.Equal(t, sdk.StateSupported, rep.Version.State)
	require.False(t, rep.Version.Unverified)
	require.NoError(t, c.versionCtxErr)
}
