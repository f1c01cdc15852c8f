// Package screen maps application state to what should be on screen.
//
// Resolve is pure: the same state and Env always produce the same Descriptor,
// and every State, including ones this package does not know about, resolves
// to something renderable.
package screen

// Kind identifies which screen a Descriptor describes.
type Kind string

const (
	KindBlank    Kind = "blank"
	KindStart    Kind = "start"
	KindTest     Kind = "test"
	KindWaiting  Kind = "waiting"
	KindResult   Kind = "result"
	KindError    Kind = "error"
	KindFeedback Kind = "feedback"
)

// Tone colours a line.
type Tone int

const (
	ToneNormal Tone = iota
	ToneMuted
	ToneGood
	ToneBad
	ToneWarn
)

// Line is one row of body text.
type Line struct {
	Text string
	Tone Tone
}

// Intent is what an action asks the app to do. The UI layer maps intents to
// store transitions and SDK calls.
type Intent string

const (
	IntentStartTest          Intent = "startTest"
	IntentToggleInstructions Intent = "toggleInstructions"
	IntentToggleAllowToSave  Intent = "toggleAllowToSave"
	IntentRecord             Intent = "record"
	IntentGoToStart          Intent = "goToStart"
	IntentGiveFeedback       Intent = "giveFeedback"
	IntentFeedbackYes        Intent = "feedbackYes"
	IntentFeedbackNo         Intent = "feedbackNo"
	IntentQuit               Intent = "quit"
)

// Action is a key the user can press on a screen.
type Action struct {
	Key    string
	Label  string
	Intent Intent
}

// Notice is a boxed warning, such as a missing API key.
type Notice struct {
	Title string
	Text  string
}

// Descriptor is everything needed to draw one screen.
type Descriptor struct {
	Kind     Kind
	Title    string
	Subtitle string
	Lines    []Line
	// Busy asks the renderer to show an activity indicator.
	Busy    bool
	Notices []Notice
	Actions []Action
}

// ActionFor returns the action bound to key.
func (d Descriptor) ActionFor(key string) (Action, bool) {
	for _, a := range d.Actions {
		if a.Key == key {
			return a, true
		}
	}
	return Action{}, false
}

// Blank is the descriptor for states with nothing to show.
func Blank() Descriptor {
	return Descriptor{Kind: KindBlank}
}
