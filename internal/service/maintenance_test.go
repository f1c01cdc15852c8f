package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/quickstart/internal/database/repository"
)

func TestPurgeRunsDeletesSavedRuns(t *testing.T) {
	ctx := context.Background()
	runs, maint := openRuns(t)
	for i, id := range []string{"a", "b"} {
		require.NoError(t, runs.Insert(ctx, repository.Run{
			ID:         id,
			CreatedAt:  fixedNow.Add(time.Duration(i) * time.Minute),
			RecordedAt: fixedNow,
			Frames:     300,
		}))
	}

	n, err := maint.PurgeRuns(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	list, err := runs.List(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, runs.Insert(ctx, repository.Run{ID: "c", CreatedAt: fixedNow, RecordedAt: fixedNow}))
	got, err := runs.Get(ctx, "c")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestPurgeRunsWithoutDB(t *testing.T) {
	_, err := (&MaintenanceService{}).PurgeRuns(context.Background())
	require.ErrorContains(t, err, "db not configured")
}
