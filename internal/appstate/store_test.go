package appstate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/quickstart/internal/sdk"
)

func TestNewStoreDefaultsToStart(t *testing.T) {
	require.Equal(t, State(Start{}), NewStore(nil).Get())
	require.Equal(t, State(Test{}), NewStore(Test{}).Get())
}

func TestSetThenGetReturnsExactValue(t *testing.T) {
	s := NewStore(nil)
	states := []State{
		Test{Config: sdk.TestConfiguration{ShowInstructions: true, AllowToSave: false}},
		WaitingForAnalysis{Recording: sdk.Recording{ID: "rec-1", Frames: 12}},
		Result{Inference: sdk.Inference{ID: "inf-1", Confidence: 0.5}, Recording: sdk.Recording{ID: "rec-1"}},
		Error{Err: sdk.GenericError{Op: "record", Err: errors.New("camera busy")}},
		Feedback{Inference: sdk.Inference{ID: "inf-1"}},
		Start{},
	}
	for i, st := range states {
		s.Set(st)
		require.Equal(t, st, s.Get())
		require.EqualValues(t, i+1, s.Generation())
	}
}

func TestSubscribersNotifiedOnceInOrder(t *testing.T) {
	s := NewStore(nil)
	var got []string
	s.Subscribe(func(st State) { got = append(got, "a:"+string(st.Kind())) })
	s.Subscribe(func(st State) { got = append(got, "b:"+string(st.Kind())) })
	s.Subscribe(func(st State) { got = append(got, "c:"+string(st.Kind())) })

	next := Test{Config: sdk.TestConfiguration{ShowInstructions: true}}
	s.Set(next)
	require.Equal(t, []string{"a:test", "b:test", "c:test"}, got)
}

func TestObserverReceivesValueAndMayRead(t *testing.T) {
	s := NewStore(nil)
	var seen []State
	s.Subscribe(func(st State) {
		seen = append(seen, st)
		require.Equal(t, st, s.Get())
	})
	s.Set(Feedback{RunID: "run-1"})
	require.Equal(t, []State{Feedback{RunID: "run-1"}}, seen)
}

func TestUnsubscribe(t *testing.T) {
	s := NewStore(nil)
	var a, b int
	unsubA := s.Subscribe(func(State) { a++ })
	s.Subscribe(func(State) { b++ })

	s.Set(Start{})
	unsubA()
	unsubA()
	s.Set(Start{})

	require.Equal(t, 1, a)
	require.Equal(t, 2, b)
	require.NotPanics(t, func() { s.Subscribe(nil)() })
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	s := NewStore(nil)
	var calls []string
	var unsubB func()
	s.Subscribe(func(State) {
		calls = append(calls, "a")
		unsubB()
	})
	unsubB = s.Subscribe(func(State) { calls = append(calls, "b") })

	// b was subscribed when Set began, so it still hears this one.
	s.Set(Start{})
	s.Set(Start{})
	require.Equal(t, []string{"a", "b", "a"}, calls)
}

func TestTestConfigurationSurvivesLaterStates(t *testing.T) {
	s := NewStore(nil)
	cfg := sdk.TestConfiguration{ShowInstructions: true, AllowToSave: false}
	entered := Test{Config: cfg}
	s.Set(entered)

	rec := sdk.Recording{ID: "rec"}
	inf := sdk.Inference{ID: "inf", RecordingID: "rec"}
	s.Set(WaitingForAnalysis{Config: cfg, Recording: rec})
	s.Set(Result{Config: cfg, Inference: inf, Recording: rec})
	s.Set(Feedback{Inference: inf, Recording: rec})

	require.Equal(t, sdk.TestConfiguration{ShowInstructions: true, AllowToSave: false}, entered.Config)
	require.Equal(t, Feedback{Inference: inf, Recording: rec}, s.Get())
}
