package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/quickstart/internal/appstate"
	"github.com/jask/quickstart/internal/database/repository"
	"github.com/jask/quickstart/internal/prefs"
	"github.com/jask/quickstart/internal/sdk"
)

// SessionService drives one test through the SDK and computes the state each
// step leads to. It never touches the store; callers Set what it returns.
type SessionService struct {
	Runner sdk.Runner
	// Runs is optional; without it nothing is saved.
	Runs *repository.RunRepo
	Log  zerolog.Logger
	Now  func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Begin enters a test with the configuration taken from p.
func (s *SessionService) Begin(p prefs.Preferences) appstate.Test {
	return appstate.Test{Config: p.TestConfiguration()}
}

// Record captures a recording and returns WaitingForAnalysis or Error.
func (s *SessionService) Record(ctx context.Context, cfg sdk.TestConfiguration) appstate.State {
	rec, err := s.Runner.Record(ctx, cfg)
	if err != nil {
		se := sdk.AsError("record", err)
		s.Log.Warn().Err(se).Str("reason", sdk.Describe(se)).Msg("recording failed")
		return appstate.Error{Err: se}
	}
	s.Log.Info().Str("recording", rec.ID).Int("frames", rec.Frames).Msg("recording finished")
	return appstate.WaitingForAnalysis{Config: cfg, Recording: rec}
}

// Analyze runs inference on the waiting recording and returns Result or
// Error. The run is saved when the configuration allows it.
func (s *SessionService) Analyze(ctx context.Context, w appstate.WaitingForAnalysis) appstate.State {
	inf, err := s.Runner.Analyze(ctx, w.Recording)
	if err != nil {
		se := sdk.AsError("analyze", err)
		if _, generic := se.(sdk.GenericError); generic {
			se = sdk.AnalysisFailedError{Err: err}
		}
		s.Log.Warn().Err(se).Str("recording", w.Recording.ID).Msg("analysis failed")
		return appstate.Error{Err: se}
	}
	res := appstate.Result{Config: w.Config, Inference: inf, Recording: w.Recording}
	if w.Config.AllowToSave {
		res.RunID = s.save(ctx, w.Config, inf, w.Recording)
	}
	s.Log.Info().
		Str("inference", inf.ID).
		Bool("impairment", inf.HasImpairment).
		Str("run", res.RunID).
		Msg("analysis finished")
	return res
}

func (s *SessionService) save(ctx context.Context, cfg sdk.TestConfiguration, inf sdk.Inference, rec sdk.Recording) string {
	if s.Runs == nil {
		return ""
	}
	run := repository.Run{
		ID:               uuid.NewString(),
		CreatedAt:        s.now(),
		ShowInstructions: cfg.ShowInstructions,
		AllowToSave:      cfg.AllowToSave,
		InferenceID:      inf.ID,
		HasImpairment:    inf.HasImpairment,
		Confidence:       inf.Confidence,
		RecordingID:      rec.ID,
		RecordedAt:       rec.StartedAt,
		Duration:         rec.Duration,
		Frames:           rec.Frames,
	}
	if err := s.Runs.Insert(ctx, run); err != nil {
		s.Log.Error().Err(err).Msg("save run")
		return ""
	}
	return run.ID
}

// Feedback moves a result to the feedback screen.
func (s *SessionService) Feedback(r appstate.Result) appstate.Feedback {
	return appstate.Feedback{Inference: r.Inference, Recording: r.Recording, RunID: r.RunID}
}

// SubmitFeedback stores the user's answer for a saved run. Unsaved runs only log it.
func (s *SessionService) SubmitFeedback(ctx context.Context, fb appstate.Feedback, matched bool) error {
	s.Log.Info().Str("inference", fb.Inference.ID).Bool("matched", matched).Msg("feedback")
	if fb.RunID == "" || s.Runs == nil {
		return nil
	}
	return s.Runs.SetFeedback(ctx, fb.RunID, matched, s.now())
}

// Observe logs every state transition on store until the returned func is called.
func (s *SessionService) Observe(store *appstate.Store) (stop func()) {
	return store.Subscribe(func(st appstate.State) {
		s.Log.Debug().Str("state", string(st.Kind())).Msg("transition")
	})
}
