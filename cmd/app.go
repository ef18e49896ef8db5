package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cocktail_rig/internal/config"
	"cocktail_rig/internal/hardware"
	"cocktail_rig/internal/logger"
	"cocktail_rig/internal/metrics"
	"cocktail_rig/internal/repository"
	repodb "cocktail_rig/internal/repository/db"
	"cocktail_rig/internal/service"
)

// app is everything a command needs, built from the config file.
type app struct {
	cfg      config.Config
	log      *logger.Logger
	db       *sql.DB
	closeDrv func() error
	services *service.Service
}

// newApp loads configuration and wires storage, the pump driver and the
// services. Background operations are bound to ctx.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.Get(cfg.Log.Level)
	metrics.Init()

	db, err := openDB(cfg.DB.Path, log)
	if err != nil {
		return nil, fmt.Errorf("init sqlite: %w", err)
	}

	drv, closeDrv, err := openDriver(cfg.Hardware, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	registry, err := hardware.NewRegistry(drv, cfg.Hardware.PinPairs())
	if err != nil {
		_ = closeDrv()
		_ = db.Close()
		return nil, fmt.Errorf("pump registry: %w", err)
	}
	log.Infow("rig_ready", "driver", cfg.Hardware.Driver, "pumps", registry.Len(), "db", cfg.DB.Path)

	repos := repository.NewRepository(db)
	services := service.NewService(ctx, repos, registry, service.Deps{
		Log: log,
		Auth: service.AuthOptions{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
		Bar: service.BarOptions{
			PrimeSeconds:          cfg.Maintenance.PrimeSeconds,
			CleanSeconds:          cfg.Maintenance.CleanSeconds,
			MaxMaintenanceSeconds: cfg.Maintenance.MaxSeconds,
		},
		SecondsPerOunce: cfg.Calibration.SecondsPerOunce,
		MaxStepSeconds:  cfg.Pour.MaxStepSeconds,
	})

	return &app{cfg: cfg, log: log, db: db, closeDrv: closeDrv, services: services}, nil
}

// Close waits for a running operation to release the pumps, then closes
// the driver and the database.
func (a *app) Close() error {
	a.services.Wait()
	return errors.Join(a.closeDrv(), a.db.Close())
}

// openDB initializes the SQLite database at path.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "rig.db")
		path = "rig.db"
	}
	return repodb.InitDB(path)
}

// openDriver builds the configured line driver and its closer.
func openDriver(cfg config.HardwareConfig, log *logger.Logger) (hardware.Driver, func() error, error) {
	switch cfg.Driver {
	case config.DriverSerial:
		d, err := hardware.OpenSerial(hardware.SerialOpt{Port: cfg.SerialPort, Baud: cfg.Baud}, log)
		if err != nil {
			return nil, nil, err
		}
		return d, d.Close, nil
	default:
		return hardware.NewSimDriver(log), func() error { return nil }, nil
	}
}
