package service

import (
	"context"

	"cocktail_rig/internal/hardware"
	"cocktail_rig/internal/logger"
	"cocktail_rig/internal/models"
	"cocktail_rig/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Catalog manages pump assignment, recipes and the selected cocktail.
type Catalog interface {
	PumpConfig(ctx context.Context) (models.PumpConfig, error)
	SavePumpConfig(ctx context.Context, raw map[string]string) (models.PumpConfig, error)
	Cocktails(ctx context.Context) ([]models.Cocktail, error)
	ReplaceCocktails(ctx context.Context, coll models.CocktailCollection) error
	Cocktail(ctx context.Context, name string) (*models.Cocktail, error)
	UpdateIngredients(ctx context.Context, name string, ing *models.Ingredients) error
	Selection(ctx context.Context) (string, error)
	Select(ctx context.Context, token string) (string, error)
}

// Calibration reads and writes seconds per ounce.
type Calibration interface {
	Get(ctx context.Context) (float64, error)
	Set(ctx context.Context, secondsPerOz float64) error
}

// Bar runs operations synchronously; the CLI uses it directly.
type Bar interface {
	Pour(ctx context.Context, p PourParams) (models.PourReport, error)
	Prime(ctx context.Context, seconds float64) (models.MaintenanceReport, error)
	Clean(ctx context.Context, seconds float64) (models.MaintenanceReport, error)
}

// Operator runs operations in the background for the HTTP API.
type Operator interface {
	StartPour(p PourParams) (models.Operation, error)
	StartPrime(seconds float64) (models.Operation, error)
	StartClean(seconds float64) (models.Operation, error)
	Current() models.Operation
	CancelCurrent() (models.Operation, bool)
	Subscribe() (<-chan models.Operation, func())
	Wait()
}

// EventLog exposes the append-only event history with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RigEvent, error)
}

// Service aggregates every sub-service.
type Service struct {
	Authorization
	Catalog
	Calibration
	Bar
	Operator
	EventLog
}

// Deps carries configuration-derived settings into NewService.
type Deps struct {
	Clock           Clock
	Log             *logger.Logger
	Auth            AuthOptions
	Bar             BarOptions
	SecondsPerOunce float64
	MaxStepSeconds  float64
}

// NewService wires the repositories and the pump registry into services.
// Background operations are bound to ctx.
func NewService(ctx context.Context, repos *repository.Repository, registry *hardware.Registry, d Deps) *Service {
	log := logger.OrNop(d.Log)
	seq := NewSequencer(registry, d.Clock, log)
	seq.SetMaxStepSeconds(d.MaxStepSeconds)
	catalog := NewCatalogService(repos, registry.Len(), log)
	calibration := NewCalibrationService(repos.Settings, repos.EventRepo, d.SecondsPerOunce, log)
	bar := NewBarService(seq, catalog, calibration, repos.EventRepo, d.Bar, log)

	return &Service{
		Authorization: NewAuthService(repos.Auth, d.Auth),
		Catalog:       catalog,
		Calibration:   calibration,
		Bar:           bar,
		Operator:      NewOperations(ctx, bar),
		EventLog:      NewEventLogService(repos.EventRepo),
	}
}
