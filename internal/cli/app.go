package cli

import (
	"fmt"

	"homebudget/internal/config"
	"homebudget/internal/database"
	"homebudget/internal/logger"
	"homebudget/internal/metrics"
	"homebudget/internal/service"
	"homebudget/internal/store"
	"homebudget/internal/store/gormstore"
	"homebudget/internal/store/memory"
)

// app is everything a command needs, built once from the loaded config.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   store.Store
	svc     *service.Services
	metrics *metrics.Metrics
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Database.Driver == "memory" {
		return memory.New(), nil
	}
	db, err := database.Init(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return gormstore.New(db), nil
}

func newApp(cfg *config.Config, log *logger.Logger) (*app, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	policy, err := service.ParseReferencePolicy(cfg.Ledger.ReferencePolicy)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	opts := service.Options{
		Logger:          log,
		ReferencePolicy: policy,
	}
	if cfg.Ledger.EnforceEligibility {
		opts.Eligibility = &service.Eligibility{AdultAge: cfg.Ledger.AdultAge}
	}

	a := &app{cfg: cfg, log: log, store: st}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New()
		opts.Observer = a.metrics
	}
	a.svc = service.New(st, opts)

	log.Info("ledger ready",
		"driver", cfg.Database.Driver,
		"reference_policy", string(policy),
		"enforce_eligibility", cfg.Ledger.EnforceEligibility)
	return a, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close store", "error", err)
	}
	a.log.Sync()
}
