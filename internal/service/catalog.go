package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cocktail_rig/internal/logger"
	"cocktail_rig/internal/models"
	"cocktail_rig/internal/repository"
)

// SettingSelection holds the selected cocktail's safe name.
const SettingSelection = "selected_cocktail"

var (
	ErrCocktailNotFound  = errors.New("cocktail not found")
	ErrNothingSelected   = errors.New("no cocktail selected")
	ErrInvalidPumpConfig = errors.New("invalid pump configuration")
	ErrInvalidCollection = errors.New("invalid cocktail collection")
)

// CatalogService owns the pump assignment, the recipe collection and the
// selected cocktail token.
type CatalogService struct {
	pumps     repository.PumpRepo
	cocktails repository.CocktailRepo
	settings  repository.SettingsRepo
	events    repository.EventRepo
	pumpCount int
	log       *logger.Logger
}

func NewCatalogService(repos *repository.Repository, pumpCount int, log *logger.Logger) *CatalogService {
	return &CatalogService{
		pumps:     repos.Pumps,
		cocktails: repos.Cocktails,
		settings:  repos.Settings,
		events:    repos.EventRepo,
		pumpCount: pumpCount,
		log:       logger.OrNop(log),
	}
}

func (s *CatalogService) PumpConfig(ctx context.Context) (models.PumpConfig, error) {
	return s.pumps.Load(ctx)
}

// SavePumpConfig validates raw ({"Pump 1":"vodka"}) against the registry and
// replaces the stored assignment.
func (s *CatalogService) SavePumpConfig(ctx context.Context, raw map[string]string) (models.PumpConfig, error) {
	cfg, err := models.NewPumpConfig(raw, s.pumpCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPumpConfig, err)
	}
	if err := s.pumps.Save(ctx, cfg); err != nil {
		return nil, err
	}
	s.log.Infow("pump_config_saved", "assigned", len(cfg.Pumps()))
	s.appendEvent(ctx, models.RigEvent{
		Type:        models.EventConfig,
		Description: "Pump configuration saved",
		Metadata:    cfg.Labels(),
	})
	return cfg, nil
}

func (s *CatalogService) Cocktails(ctx context.Context) ([]models.Cocktail, error) {
	return s.cocktails.List(ctx)
}

// ReplaceCocktails stores the whole collection. Names must be present and
// unique once made safe, since the safe name is the lookup key.
func (s *CatalogService) ReplaceCocktails(ctx context.Context, coll models.CocktailCollection) error {
	seen := make(map[string]bool, len(coll.Cocktails))
	for i, c := range coll.Cocktails {
		safe := c.SafeName()
		if safe == "" {
			return fmt.Errorf("%w: cocktail %d has no normal_name", ErrInvalidCollection, i)
		}
		if seen[safe] {
			return fmt.Errorf("%w: duplicate cocktail %q", ErrInvalidCollection, c.NormalName)
		}
		seen[safe] = true
	}
	if err := s.cocktails.ReplaceAll(ctx, coll.Cocktails); err != nil {
		return err
	}
	s.log.Infow("cocktails_saved", "count", len(coll.Cocktails))
	s.appendEvent(ctx, models.RigEvent{
		Type:        models.EventConfig,
		Description: fmt.Sprintf("Cocktail collection saved (%d)", len(coll.Cocktails)),
	})
	return nil
}

// Cocktail looks a cocktail up by safe name or display name.
func (s *CatalogService) Cocktail(ctx context.Context, name string) (*models.Cocktail, error) {
	safe := models.SafeName(name)
	if safe == "" {
		return nil, ErrCocktailNotFound
	}
	c, err := s.cocktails.Get(ctx, safe)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCocktailNotFound
	}
	return c, nil
}

// UpdateIngredients saves slider-adjusted measurements back into the
// collection.
func (s *CatalogService) UpdateIngredients(ctx context.Context, name string, ing *models.Ingredients) error {
	safe := models.SafeName(name)
	ok, err := s.cocktails.SaveIngredients(ctx, safe, ing)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCocktailNotFound
	}
	s.log.Infow("cocktail_ingredients_saved", "cocktail", safe)
	return nil
}

// Selection returns the selected safe name.
func (s *CatalogService) Selection(ctx context.Context) (string, error) {
	v, ok, err := s.settings.Get(ctx, SettingSelection)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(v) == "" {
		return "", ErrNothingSelected
	}
	return v, nil
}

// Select stores the token after checking it names a stored cocktail.
func (s *CatalogService) Select(ctx context.Context, token string) (string, error) {
	c, err := s.Cocktail(ctx, token)
	if err != nil {
		return "", err
	}
	safe := c.SafeName()
	if err := s.settings.Set(ctx, SettingSelection, safe); err != nil {
		return "", err
	}
	s.log.Infow("cocktail_selected", "cocktail", safe)
	return safe, nil
}

func (s *CatalogService) appendEvent(ctx context.Context, e models.RigEvent) {
	recordEvent(ctx, s.events, s.log, e)
}
