package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jask/quickstart/internal/config"
	"github.com/jask/quickstart/internal/database"
	"github.com/jask/quickstart/internal/database/repository"
	"github.com/jask/quickstart/internal/logging"
	"github.com/jask/quickstart/internal/sdk"
	"github.com/jask/quickstart/internal/secrets"
	"github.com/jask/quickstart/internal/service"
)

// wiring holds everything a command needs, built from the loaded config.
type wiring struct {
	cfg    config.Config
	log    zerolog.Logger
	apiKey string

	db          *sql.DB
	runs        *repository.RunRepo
	support     *service.SupportService
	session     *service.SessionService
	maintenance *service.MaintenanceService

	closers []func() error
}

func setup(withDB bool) (*wiring, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(logging.Config{Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		return nil, err
	}
	w := &wiring{cfg: cfg, log: log, closers: []func() error{closeLog}}

	var keys secrets.Getter
	if store, err := secrets.NewStore(); err == nil {
		keys = store
	} else {
		log.Warn().Err(err).Msg("secrets store unavailable")
	}
	w.apiKey = secrets.ResolveAPIKey(cfg.SDK.APIKeyEnv, keys, cfg.SDK.APIKey)
	if w.apiKey == "" {
		log.Warn().Str("env", cfg.SDK.APIKeyEnv).Msg("no sdk api key configured")
	}

	facade, err := buildFacade(cfg, log)
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	if withDB {
		db, err := database.OpenMigrated(cfg.Database.Path)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("database: %w", err)
		}
		w.db = db
		w.closers = append(w.closers, db.Close)
		w.runs = repository.NewRunRepo(db)
		w.maintenance = &service.MaintenanceService{DB: db}
	}

	w.support = &service.SupportService{
		Checker: facade,
		Version: cfg.SDK.Version,
		Log:     logging.WithComponent(log, "support"),
	}
	w.session = &service.SessionService{
		Runner: facade,
		Runs:   w.runs,
		Log:    logging.WithComponent(log, "session"),
	}
	log.Info().Str("mode", cfg.SDK.Mode).Str("version", cfg.SDK.Version).Msg("started")
	return w, nil
}

// buildFacade returns the simulator, or in remote mode the HTTP status client
// composed with the simulator for recording and analysis.
func buildFacade(cfg config.Config, log zerolog.Logger) (sdk.Facade, error) {
	simCfg := sdk.SimulatorConfig{
		Device:            cfg.SDK.Device,
		SupportedDevices:  cfg.Simulator.SupportedDevices,
		Version:           cfg.SDK.Version,
		SupportedVersions: cfg.Simulator.SupportedVersions,
		Latency:           cfg.Simulator.Latency,
		Offline:           cfg.Simulator.Offline,
		Impairment:        cfg.Simulator.Impairment,
	}
	if cfg.Simulator.Failure != "" {
		reason, err := sdk.ParseReasonCode(cfg.Simulator.Failure)
		if err != nil {
			return nil, fmt.Errorf("simulator.failure: %w", err)
		}
		simCfg.Failure = &reason
	}
	sim := sdk.NewSimulator(simCfg)
	if cfg.SDK.Mode != config.ModeRemote {
		return sim, nil
	}
	client := sdk.NewClient(sdk.ClientConfig{
		BaseURL: cfg.SDK.BaseURL,
		Version: cfg.SDK.Version,
		Device:  cfg.SDK.Device,
		Timeout: cfg.SDK.Timeout,
		Retries: cfg.SDK.Retries,
		Logger:  logging.WithComponent(log, "sdk"),
	})
	return sdk.Compose(client, sim), nil
}

func (w *wiring) Close() error {
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
