package screen

import (
	"fmt"
	"strings"

	"github.com/jask/quickstart/internal/appstate"
	"github.com/jask/quickstart/internal/sdk"
)

const defaultAppName = "SDK Quickstart"

// Env is display-only data the screens need besides the state itself.
type Env struct {
	AppName       string
	SDKVersion    string
	APIKeyMissing bool
	APIKeyHint    string
	Device        sdk.DeviceStatus
	Version       sdk.VersionStatus
	// Settings are the current preference values, shown and toggled on the
	// start screen and copied into the next Test state.
	Settings sdk.TestConfiguration
}

var instructions = []string{
	"Hold the phone at arm's length, level with your eyes.",
	"Keep your face centered and look at the display.",
	"Try not to blink while recording.",
}

// Resolve returns the screen for s. Unknown or nil states resolve to Blank.
func Resolve(s appstate.State, env Env) Descriptor {
	var d Descriptor
	switch st := s.(type) {
	case appstate.Start:
		d = resolveStart(env)
	case appstate.Test:
		d = resolveTest(st)
	case appstate.WaitingForAnalysis:
		d = resolveWaiting(st)
	case appstate.Result:
		d = resolveResult(st)
	case appstate.Error:
		d = resolveError(st)
	case appstate.Feedback:
		d = resolveFeedback(st)
	default:
		return Blank()
	}
	d.Subtitle = "SDK version: " + orDash(env.SDKVersion)
	if d.Title == "" {
		d.Title = appName(env)
	}
	return d
}

func resolveStart(env Env) Descriptor {
	d := Descriptor{Kind: KindStart, Title: appName(env)}

	d.Lines = append(d.Lines, Line{Text: "Device model support?", Tone: ToneMuted})
	d.Lines = append(d.Lines, deviceLines(env.Device)...)
	d.Lines = append(d.Lines, Line{Text: "SDK version support?", Tone: ToneMuted})
	d.Lines = append(d.Lines, versionLines(env.Version, env.SDKVersion)...)
	d.Lines = append(d.Lines,
		Line{Text: "Test configuration:", Tone: ToneMuted},
		Line{Text: checkbox(env.Settings.ShowInstructions) + " Show instructions"},
		Line{Text: checkbox(env.Settings.AllowToSave) + " Allow to save"},
	)
	d.Busy = pending(env.Device.State) || pending(env.Version.State)

	if env.APIKeyMissing {
		hint := env.APIKeyHint
		if hint == "" {
			hint = "Add your API key to the configuration"
		}
		d.Notices = append(d.Notices, Notice{Title: "API key missing", Text: hint})
	}

	start := "Start test"
	if env.Device.State == sdk.StateUnsupported || env.Version.State == sdk.StateUnsupported {
		start = "Start test anyway"
	}
	d.Actions = []Action{
		{Key: "enter", Label: start, Intent: IntentStartTest},
		{Key: "i", Label: "Show instructions", Intent: IntentToggleInstructions},
		{Key: "s", Label: "Allow to save", Intent: IntentToggleAllowToSave},
		{Key: "q", Label: "Quit", Intent: IntentQuit},
	}
	return d
}

func deviceLines(st sdk.DeviceStatus) []Line {
	switch st.State {
	case sdk.StateSupported:
		return []Line{{Text: fmt.Sprintf("Device supported (%s)", st.Device), Tone: ToneGood}}
	case sdk.StateUnsupported:
		out := []Line{{Text: fmt.Sprintf("Device not supported by the SDK (%s)", st.Device), Tone: ToneBad}}
		if st.Nearest != "" {
			out = append(out, Line{Text: "Closest supported model: " + st.Nearest, Tone: ToneMuted})
		}
		return out
	case sdk.StateNetworkError:
		return []Line{{Text: "There seems to be a network error", Tone: ToneWarn}}
	default:
		return []Line{{Text: "Loading...", Tone: ToneMuted}}
	}
}

func versionLines(st sdk.VersionStatus, fallback string) []Line {
	v := st.Version
	if v == "" {
		v = fallback
	}
	switch st.State {
	case sdk.StateSupported:
		out := []Line{{Text: fmt.Sprintf("SDK version (%s) is supported", v), Tone: ToneGood}}
		if st.Unverified {
			out = append(out, Line{Text: "Version check failed; assuming supported", Tone: ToneWarn})
		}
		return out
	case sdk.StateUnsupported:
		out := []Line{{Text: fmt.Sprintf("Unsupported SDK version (%s)", v), Tone: ToneBad}}
		if len(st.Supported) > 0 {
			out = append(out, Line{Text: "Supported versions: " + strings.Join(st.Supported, ", "), Tone: ToneMuted})
		}
		return out
	case sdk.StateNetworkError:
		return []Line{{Text: "There seems to be a network error", Tone: ToneWarn}}
	default:
		return []Line{{Text: "Loading...", Tone: ToneMuted}}
	}
}

func resolveTest(st appstate.Test) Descriptor {
	d := Descriptor{Kind: KindTest, Title: "Test"}
	if st.Config.ShowInstructions {
		for i, text := range instructions {
			d.Lines = append(d.Lines, Line{Text: fmt.Sprintf("%d. %s", i+1, text)})
		}
	} else {
		d.Lines = append(d.Lines, Line{Text: "Instructions are turned off.", Tone: ToneMuted})
	}
	if st.Config.AllowToSave {
		d.Lines = append(d.Lines, Line{Text: "The result will be saved.", Tone: ToneMuted})
	} else {
		d.Lines = append(d.Lines, Line{Text: "The result will not be saved.", Tone: ToneMuted})
	}
	d.Actions = []Action{
		{Key: "enter", Label: "Record", Intent: IntentRecord},
		{Key: "esc", Label: "Go to start", Intent: IntentGoToStart},
	}
	return d
}

func resolveWaiting(st appstate.WaitingForAnalysis) Descriptor {
	text := "Analysing recording"
	if st.Recording.Frames > 0 {
		text = fmt.Sprintf("Analysing recording (%d frames)", st.Recording.Frames)
	}
	return Descriptor{
		Kind:  KindWaiting,
		Title: "Waiting for analysis",
		Busy:  true,
		Lines: []Line{{Text: text, Tone: ToneMuted}},
	}
}

func resolveResult(st appstate.Result) Descriptor {
	d := Descriptor{Kind: KindResult, Title: "Result"}
	if st.Inference.HasImpairment {
		d.Lines = append(d.Lines, Line{Text: "Impairment detected", Tone: ToneBad})
	} else {
		d.Lines = append(d.Lines, Line{Text: "No impairment detected", Tone: ToneGood})
	}
	d.Lines = append(d.Lines, Line{Text: fmt.Sprintf("Confidence: %.0f%%", st.Inference.Confidence*100)})
	if st.Recording.ID != "" {
		d.Lines = append(d.Lines, Line{
			Text: fmt.Sprintf("Recording: %s, %d frames", st.Recording.Duration, st.Recording.Frames),
			Tone: ToneMuted,
		})
	}
	if st.RunID != "" {
		d.Lines = append(d.Lines, Line{Text: "Saved as run " + st.RunID, Tone: ToneMuted})
	} else {
		d.Lines = append(d.Lines, Line{Text: "Not saved", Tone: ToneMuted})
	}
	d.Actions = []Action{
		{Key: "f", Label: "Give feedback", Intent: IntentGiveFeedback},
		{Key: "enter", Label: "Go to start", Intent: IntentGoToStart},
	}
	return d
}

func resolveError(st appstate.Error) Descriptor {
	d := Descriptor{Kind: KindError, Title: "Error"}
	if st.Err == nil {
		d.Lines = append(d.Lines, Line{Text: "<error not available>", Tone: ToneMuted})
	} else {
		d.Lines = append(d.Lines, Line{Text: "Error: " + st.Err.Error()})
		if reason := sdk.Describe(st.Err); reason != "" {
			d.Lines = append(d.Lines, Line{Text: "Test failed because " + reason + ".", Tone: ToneBad})
		}
	}
	d.Actions = []Action{{Key: "enter", Label: "Go to start", Intent: IntentGoToStart}}
	return d
}

func resolveFeedback(st appstate.Feedback) Descriptor {
	verdict := "no impairment"
	if st.Inference.HasImpairment {
		verdict = "impairment"
	}
	return Descriptor{
		Kind:  KindFeedback,
		Title: "Feedback",
		Lines: []Line{
			{Text: fmt.Sprintf("The analysis reported %s.", verdict)},
			{Text: "Did the result match your expectation?"},
		},
		Actions: []Action{
			{Key: "y", Label: "Yes", Intent: IntentFeedbackYes},
			{Key: "n", Label: "No", Intent: IntentFeedbackNo},
			{Key: "esc", Label: "Skip", Intent: IntentGoToStart},
		},
	}
}

func pending(s sdk.SupportState) bool {
	return s == "" || s == sdk.StatePending
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func appName(env Env) string {
	if env.AppName != "" {
		return env.AppName
	}
	return defaultAppName
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
