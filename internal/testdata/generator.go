// Package testdata seeds sample test runs for demos and tests.
package testdata

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jask/quickstart/internal/database"
	"github.com/jask/quickstart/internal/database/repository"
)

// SeedRuns inserts n sample runs spread over the last n days, newest first.
// The same seed always produces the same verdicts and feedback.
func SeedRuns(ctx context.Context, runs *repository.RunRepo, n int, seed int64) ([]repository.Run, error) {
	rng := rand.New(rand.NewSource(seed))
	now := database.Now()

	out := make([]repository.Run, 0, n)
	for i := 0; i < n; i++ {
		impaired := rng.Intn(4) == 0
		conf := 0.85 + rng.Float64()*0.14
		if impaired {
			conf = 0.70 + rng.Float64()*0.2
		}
		created := now.Add(-time.Duration(i) * 24 * time.Hour)
		run := repository.Run{
			ID:               uuid.NewString(),
			CreatedAt:        created,
			ShowInstructions: rng.Intn(2) == 0,
			AllowToSave:      true,
			InferenceID:      uuid.NewString(),
			HasImpairment:    impaired,
			Confidence:       conf,
			RecordingID:      uuid.NewString(),
			RecordedAt:       created.Add(-15 * time.Second),
			Duration:         10 * time.Second,
			Frames:           300,
		}
		if err := runs.Insert(ctx, run); err != nil {
			return out, err
		}
		if rng.Intn(3) > 0 {
			matched := rng.Intn(5) > 0
			if err := runs.SetFeedback(ctx, run.ID, matched, created.Add(time.Minute)); err != nil {
				return out, err
			}
			fb, at := matched, created.Add(time.Minute)
			run.Feedback, run.FeedbackAt = &fb, &at
		}
		out = append(out, run)
	}
	return out, nil
}
