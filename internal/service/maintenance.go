package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/quickstart/internal/database"
	"github.com/jask/quickstart/internal/database/repository"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// PurgeRuns deletes every saved run and compacts the database. The schema is
// kept so the app can continue running.
func (s *MaintenanceService) PurgeRuns(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	runs := repository.NewRunRepo(s.DB)
	var n int64
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		var err error
		n, err = runs.WithTx(tx).DeleteAll(ctx)
		return err
	}); err != nil {
		return 0, fmt.Errorf("purge runs: %w", err)
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return n, nil
}
