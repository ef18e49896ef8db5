package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"cocktail_rig/internal/logger"
	"cocktail_rig/internal/metrics"
	"cocktail_rig/internal/models"
	"cocktail_rig/internal/repository"
)

// Maintenance defaults, in seconds.
const (
	DefaultPrimeSeconds          = 5.0
	DefaultCleanSeconds          = 10.0
	DefaultMaxMaintenanceSeconds = 120.0
)

var (
	ErrBusy            = errors.New("rig busy: another operation is running")
	ErrInvalidDuration = errors.New("invalid duration")
)

// ConfigurationLoadError means the pump configuration, recipe or calibration
// could not be read. No pump was actuated.
type ConfigurationLoadError struct {
	What string
	Err  error
}

func (e *ConfigurationLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.What, e.Err)
}

func (e *ConfigurationLoadError) Unwrap() error { return e.Err }

// PourParams selects what to pour. An empty Cocktail pours the current
// selection; an empty Mode is single. Ingredients, when set, replaces the
// stored measurements for this pour only.
type PourParams struct {
	Cocktail    string
	Mode        string
	Ingredients *models.Ingredients
}

type BarOptions struct {
	PrimeSeconds          float64
	CleanSeconds          float64
	MaxMaintenanceSeconds float64
}

func (o BarOptions) withDefaults() BarOptions {
	if o.PrimeSeconds <= 0 {
		o.PrimeSeconds = DefaultPrimeSeconds
	}
	if o.CleanSeconds <= 0 {
		o.CleanSeconds = DefaultCleanSeconds
	}
	if o.MaxMaintenanceSeconds <= 0 {
		o.MaxMaintenanceSeconds = DefaultMaxMaintenanceSeconds
	}
	return o
}

// BarService runs pours and maintenance cycles against the rig, one at a
// time. Configuration is loaded fresh for every operation.
type BarService struct {
	seq         *Sequencer
	catalog     *CatalogService
	calibration *CalibrationService
	events      repository.EventRepo
	opts        BarOptions
	log         *logger.Logger

	guard sync.Mutex
}

func NewBarService(seq *Sequencer, catalog *CatalogService, calibration *CalibrationService, events repository.EventRepo, opts BarOptions, log *logger.Logger) *BarService {
	return &BarService{
		seq:         seq,
		catalog:     catalog,
		calibration: calibration,
		events:      events,
		opts:        opts.withDefaults(),
		log:         logger.OrNop(log),
	}
}

// tryAcquire takes the single-operation guard or reports ErrBusy.
func (b *BarService) tryAcquire() error {
	if !b.guard.TryLock() {
		metrics.IncBusyRejection()
		b.log.Warnw("operation_rejected_busy")
		return ErrBusy
	}
	return nil
}

func (b *BarService) release() { b.guard.Unlock() }

// Pour blocks until the pour has finished. It returns ErrBusy when another
// operation holds the rig.
func (b *BarService) Pour(ctx context.Context, p PourParams) (models.PourReport, error) {
	multiplier, err := parsePourMode(p.Mode)
	if err != nil {
		return models.PourReport{}, err
	}
	if err := b.tryAcquire(); err != nil {
		return models.PourReport{}, err
	}
	defer b.release()
	return b.pour(ctx, p, multiplier)
}

// Prime blocks until every pump has run forward. Zero seconds uses the
// configured default.
func (b *BarService) Prime(ctx context.Context, seconds float64) (models.MaintenanceReport, error) {
	seconds, err := b.maintenanceSeconds(seconds, b.opts.PrimeSeconds)
	if err != nil {
		return models.MaintenanceReport{}, err
	}
	if err := b.tryAcquire(); err != nil {
		return models.MaintenanceReport{}, err
	}
	defer b.release()
	return b.maintain(ctx, models.OperationPrime, seconds)
}

// Clean blocks until every pump has run in reverse.
func (b *BarService) Clean(ctx context.Context, seconds float64) (models.MaintenanceReport, error) {
	seconds, err := b.maintenanceSeconds(seconds, b.opts.CleanSeconds)
	if err != nil {
		return models.MaintenanceReport{}, err
	}
	if err := b.tryAcquire(); err != nil {
		return models.MaintenanceReport{}, err
	}
	defer b.release()
	return b.maintain(ctx, models.OperationClean, seconds)
}

func parsePourMode(mode string) (int, error) {
	if mode == "" {
		return 1, nil
	}
	return ParseServing(mode)
}

func (b *BarService) maintenanceSeconds(seconds, def float64) (float64, error) {
	if seconds == 0 {
		return def, nil
	}
	if math.IsNaN(seconds) || seconds < 0 || seconds > b.opts.MaxMaintenanceSeconds {
		return 0, fmt.Errorf("%w: %v s outside (0, %v]", ErrInvalidDuration, seconds, b.opts.MaxMaintenanceSeconds)
	}
	return seconds, nil
}

// resolveCocktail returns the cocktail to pour. Not-found and nothing-selected
// are caller errors; anything else is a load failure.
func (b *BarService) resolveCocktail(ctx context.Context, name string) (models.Cocktail, error) {
	if name == "" {
		sel, err := b.catalog.Selection(ctx)
		if err != nil {
			if errors.Is(err, ErrNothingSelected) {
				return models.Cocktail{}, err
			}
			return models.Cocktail{}, &ConfigurationLoadError{What: "selection", Err: err}
		}
		name = sel
	}
	c, err := b.catalog.Cocktail(ctx, name)
	if err != nil {
		if errors.Is(err, ErrCocktailNotFound) {
			return models.Cocktail{}, err
		}
		return models.Cocktail{}, &ConfigurationLoadError{What: "recipe", Err: err}
	}
	return *c, nil
}

func (b *BarService) pour(ctx context.Context, p PourParams, multiplier int) (models.PourReport, error) {
	cfg, err := b.catalog.PumpConfig(ctx)
	if err != nil {
		return models.PourReport{}, &ConfigurationLoadError{What: "pump configuration", Err: err}
	}
	cocktail, err := b.resolveCocktail(ctx, p.Cocktail)
	if err != nil {
		return models.PourReport{}, err
	}
	if p.Ingredients != nil {
		cocktail.Ingredients = p.Ingredients
	}
	coef, err := b.calibration.Get(ctx)
	if err != nil {
		return models.PourReport{}, &ConfigurationLoadError{What: "calibration", Err: err}
	}

	b.log.Infow("pour_start", "cocktail", cocktail.NormalName, "multiplier", multiplier, "seconds_per_oz", coef)
	b.appendEvent(ctx, models.RigEvent{
		Type:        models.EventPourStart,
		Description: "Pouring " + cocktail.NormalName,
		Metadata:    map[string]any{"mode": servingName(multiplier), "seconds_per_oz": coef},
	})

	rep, err := b.seq.Pour(ctx, cfg, cocktail, multiplier, coef)
	b.recordPour(ctx, rep, err)
	return rep, err
}

func (b *BarService) recordPour(ctx context.Context, rep models.PourReport, err error) {
	for _, o := range rep.Outcomes {
		metrics.IncIngredientOutcome(o.Outcome)
		typ := models.EventIngredientSkipped
		if o.Poured() {
			typ = models.EventIngredientPoured
		} else {
			b.log.Warnw("pour_ingredient_skipped", "ingredient", o.Ingredient, "outcome", o.Outcome)
		}
		if o.Warning != "" {
			b.log.Warnw("pour_measurement_fallback", "ingredient", o.Ingredient, "measurement", o.Measurement)
		}
		b.appendEvent(ctx, models.RigEvent{
			Type:        typ,
			Description: o.Ingredient + ": " + o.Outcome,
			Metadata:    o,
		})
	}

	switch {
	case err != nil:
		metrics.IncPour(metrics.ResultFailed)
		b.log.Errorw("pour_failed", "cocktail", rep.Cocktail, "error", err)
		b.appendEvent(ctx, models.RigEvent{
			Type:        models.EventFault,
			Description: "Pour of " + rep.Cocktail + " failed: " + err.Error(),
		})
	case rep.Canceled:
		metrics.IncPour(metrics.ResultCanceled)
		b.log.Infow("pour_canceled", "cocktail", rep.Cocktail, "poured_sec", rep.TotalPouredSec)
		b.appendEvent(ctx, models.RigEvent{
			Type:        models.EventPourDone,
			Description: "Pour of " + rep.Cocktail + " canceled",
			Metadata:    map[string]any{"total_poured_sec": rep.TotalPouredSec, "canceled": true},
		})
	default:
		metrics.IncPour(metrics.ResultSuccess)
		b.log.Infow("pour_done", "cocktail", rep.Cocktail, "poured_sec", rep.TotalPouredSec,
			"skipped", len(rep.Outcomes)-rep.Count(models.OutcomePoured))
		b.appendEvent(ctx, models.RigEvent{
			Type:        models.EventPourDone,
			Description: "Poured " + rep.Cocktail,
			Metadata:    map[string]any{"total_poured_sec": rep.TotalPouredSec},
		})
	}
}

func (b *BarService) maintain(ctx context.Context, kind string, seconds float64) (models.MaintenanceReport, error) {
	b.log.Infow("maintenance_start", "kind", kind, "seconds", seconds)

	var (
		rep models.MaintenanceReport
		err error
	)
	if kind == models.OperationClean {
		rep, err = b.seq.Clean(ctx, seconds)
	} else {
		rep, err = b.seq.Prime(ctx, seconds)
	}

	typ := models.EventPrime
	if kind == models.OperationClean {
		typ = models.EventClean
	}
	result := metrics.ResultSuccess
	desc := fmt.Sprintf("%s finished (%v s per pump)", kind, seconds)
	switch {
	case err != nil:
		result = metrics.ResultFailed
		typ = models.EventFault
		desc = fmt.Sprintf("%s failed: %v", kind, err)
		b.log.Errorw("maintenance_failed", "kind", kind, "error", err)
	case rep.Canceled:
		result = metrics.ResultCanceled
		desc = kind + " canceled"
		b.log.Infow("maintenance_canceled", "kind", kind)
	default:
		b.log.Infow("maintenance_done", "kind", kind, "pumps", len(rep.Runs))
	}
	metrics.IncMaintenance(kind, result)
	b.appendEvent(ctx, models.RigEvent{
		Type:        typ,
		Description: desc,
		Metadata:    map[string]any{"kind": kind, "seconds": seconds},
	})
	return rep, err
}

func (b *BarService) appendEvent(ctx context.Context, e models.RigEvent) {
	recordEvent(ctx, b.events, b.log, e)
}
