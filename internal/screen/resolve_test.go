package screen

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jask/quickstart/internal/appstate"
	"github.com/jask/quickstart/internal/sdk"
)

// calibrating stands in for a state case added after this package was written.
type calibrating struct{ appstate.State }

func (calibrating) Kind() appstate.Kind { return "calibrating" }

func texts(d Descriptor) []string {
	out := make([]string, 0, len(d.Lines))
	for _, l := range d.Lines {
		out = append(out, l.Text)
	}
	return out
}

func TestResolveIsTotal(t *testing.T) {
	states := []appstate.State{
		nil,
		calibrating{},
		appstate.Start{},
		appstate.Test{},
		appstate.WaitingForAnalysis{},
		appstate.Result{},
		appstate.Error{},
		appstate.Feedback{},
	}
	for _, st := range states {
		require.NotPanics(t, func() { _ = Resolve(st, Env{}) })
	}
	require.Equal(t, Blank(), Resolve(nil, Env{}))
	require.Equal(t, Blank(), Resolve(calibrating{}, Env{}))
}

func TestResolveIsDeterministic(t *testing.T) {
	env := Env{SDKVersion: "2.4.0", Device: sdk.DeviceStatus{State: sdk.StateSupported, Device: "iPhone14,2"}}
	st := appstate.Error{Err: sdk.RecordingFailedError{Reason: sdk.Interrupted()}}
	if diff := cmp.Diff(Resolve(st, env), Resolve(st, env)); diff != "" {
		t.Fatalf("resolve not deterministic (-a +b):\n%s", diff)
	}
}

func TestStartWhileLoading(t *testing.T) {
	d := Resolve(appstate.Start{}, Env{SDKVersion: "2.4.0"})
	require.Equal(t, KindStart, d.Kind)
	require.Equal(t, "SDK version: 2.4.0", d.Subtitle)
	require.True(t, d.Busy)
	require.Equal(t, []string{
		"Device model support?",
		"Loading...",
		"SDK version support?",
		"Loading...",
		"Test configuration:",
		"[ ] Show instructions",
		"[ ] Allow to save",
	}, texts(d))
	a, ok := d.ActionFor("enter")
	require.True(t, ok)
	require.Equal(t, Action{Key: "enter", Label: "Start test", Intent: IntentStartTest}, a)
}

func TestStartUnsupportedDeviceStillOffersStart(t *testing.T) {
	env := Env{
		SDKVersion: "2.4.0",
		Device:     sdk.DeviceStatusFrom(sdk.DeviceSupport{IsCurrentSupported: false, CurrentDevice: "DeviceX"}, nil),
		Version:    sdk.VersionStatus{State: sdk.StateSupported, Version: "2.4.0"},
		Settings:   sdk.TestConfiguration{ShowInstructions: true, AllowToSave: true},
	}
	d := Resolve(appstate.Start{}, env)
	require.False(t, d.Busy)

	var found bool
	for _, l := range d.Lines {
		if strings.Contains(l.Text, "DeviceX") {
			found = true
			require.Equal(t, ToneBad, l.Tone)
		}
	}
	require.True(t, found, "unsupported line should name the device")

	a, ok := d.ActionFor("enter")
	require.True(t, ok)
	require.Equal(t, "Start test anyway", a.Label)
	require.Equal(t, IntentStartTest, a.Intent)
}

func TestStartVersionCheckNetworkErrorTreatedAsSupported(t *testing.T) {
	env := Env{
		SDKVersion: "2.4.0",
		Device:     sdk.DeviceStatus{State: sdk.StateSupported, Device: "iPhone14,2"},
		Version:    sdk.VersionStatusFrom("2.4.0", sdk.VersionSupport{}, sdk.ErrNetwork),
	}
	d := Resolve(appstate.Start{}, env)
	require.Contains(t, texts(d), "SDK version (2.4.0) is supported")
	require.Contains(t, texts(d), "Version check failed; assuming supported")
	a, _ := d.ActionFor("enter")
	require.Equal(t, "Start test", a.Label)
}

func TestStartDeviceNetworkError(t *testing.T) {
	d := Resolve(appstate.Start{}, Env{Device: sdk.DeviceStatusFrom(sdk.DeviceSupport{}, sdk.ErrNetwork)})
	require.Contains(t, texts(d), "There seems to be a network error")
	_, ok := d.ActionFor("enter")
	require.True(t, ok)
}

func TestStartUnsupportedVersionListsSupported(t *testing.T) {
	env := Env{Version: sdk.VersionStatusFrom("1.0.0", sdk.VersionSupport{SupportedVersions: []string{"2.3.0", "2.4.0"}}, nil)}
	d := Resolve(appstate.Start{}, env)
	require.Contains(t, texts(d), "Unsupported SDK version (1.0.0)")
	require.Contains(t, texts(d), "Supported versions: 2.3.0, 2.4.0")
}

func TestStartAPIKeyMissingNotice(t *testing.T) {
	d := Resolve(appstate.Start{}, Env{APIKeyMissing: true, APIKeyHint: "export QUICKSTART_API_KEY"})
	require.Equal(t, []Notice{{Title: "API key missing", Text: "export QUICKSTART_API_KEY"}}, d.Notices)
	_, ok := d.ActionFor("enter")
	require.True(t, ok, "missing key must not block navigation")

	require.Empty(t, Resolve(appstate.Start{}, Env{}).Notices)
}

func TestTestScreenInstructions(t *testing.T) {
	with := Resolve(appstate.Test{Config: sdk.TestConfiguration{ShowInstructions: true}}, Env{})
	require.Len(t, with.Lines, 4)
	require.Equal(t, "The result will not be saved.", with.Lines[3].Text)

	without := Resolve(appstate.Test{Config: sdk.TestConfiguration{AllowToSave: true}}, Env{})
	require.Equal(t, []string{"Instructions are turned off.", "The result will be saved."}, texts(without))

	a, ok := without.ActionFor("enter")
	require.True(t, ok)
	require.Equal(t, IntentRecord, a.Intent)
}

func TestErrorScreenAlignmentReason(t *testing.T) {
	err := sdk.RecordingFailedError{Reason: sdk.Misaligned(sdk.AlignmentTooFarAway, "")}
	d := Resolve(appstate.Error{Err: err}, Env{})
	want := []Line{
		{Text: "Error: recording failed (alignment.tooFarAway)"},
		{Text: "Test failed because the phone was held too far away.", Tone: ToneBad},
	}
	if diff := cmp.Diff(want, d.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	a, _ := d.ActionFor("enter")
	require.Equal(t, IntentGoToStart, a.Intent)
}

func TestErrorScreenWithoutReason(t *testing.T) {
	d := Resolve(appstate.Error{Err: sdk.RecordingFailedError{Reason: sdk.Misaligned(sdk.AlignmentOK, "")}}, Env{})
	require.Len(t, d.Lines, 1)

	d = Resolve(appstate.Error{Err: sdk.GenericError{Op: "record", Err: errors.New("camera busy")}}, Env{})
	require.Equal(t, []string{"Error: record: camera busy"}, texts(d))

	d = Resolve(appstate.Error{}, Env{})
	require.Equal(t, []string{"<error not available>"}, texts(d))
}

func TestResultAndFeedback(t *testing.T) {
	rec := sdk.Recording{ID: "rec", Duration: 10 * time.Second, Frames: 300}
	inf := sdk.Inference{ID: "inf", HasImpairment: true, Confidence: 0.81}

	d := Resolve(appstate.Result{Inference: inf, Recording: rec, RunID: "run-1"}, Env{})
	require.Equal(t, []string{
		"Impairment detected",
		"Confidence: 81%",
		"Recording: 10s, 300 frames",
		"Saved as run run-1",
	}, texts(d))
	a, _ := d.ActionFor("f")
	require.Equal(t, IntentGiveFeedback, a.Intent)

	fb := Resolve(appstate.Feedback{Inference: inf, Recording: rec}, Env{})
	require.Equal(t, KindFeedback, fb.Kind)
	require.Equal(t, "The analysis reported impairment.", fb.Lines[0].Text)
	for _, key := range []string{"y", "n", "esc"} {
		_, ok := fb.ActionFor(key)
		require.True(t, ok, key)
	}
}

func TestTransitionSequenceResolvesOneScreenEach(t *testing.T) {
	store := appstate.NewStore(nil)
	var screens []Kind
	store.Subscribe(func(st appstate.State) {
		screens = append(screens, Resolve(st, Env{}).Kind)
	})

	cfg := sdk.TestConfiguration{ShowInstructions: true, AllowToSave: false}
	rec := sdk.Recording{ID: "rec"}
	inf := sdk.Inference{ID: "inf"}
	store.Set(appstate.Test{Config: cfg})
	entered := store.Get().(appstate.Test)
	store.Set(appstate.Result{Config: cfg, Inference: inf, Recording: rec})
	store.Set(appstate.Feedback{Inference: inf, Recording: rec})

	require.Equal(t, []Kind{KindTest, KindResult, KindFeedback}, screens)
	require.Equal(t, sdk.TestConfiguration{ShowInstructions: true, AllowToSave: false}, entered.Config)
}
