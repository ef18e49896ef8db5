package repository

import (
	"context"
	"database/sql"
	"time"

	"cocktail_rig/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// PumpRepo stores the pump -> ingredient assignment.
type PumpRepo interface {
	Load(ctx context.Context) (models.PumpConfig, error)
	Save(ctx context.Context, cfg models.PumpConfig) error
}

// CocktailRepo stores the recipe collection in display order.
type CocktailRepo interface {
	List(ctx context.Context) ([]models.Cocktail, error)
	// Get returns (nil, nil) when no cocktail has the given safe name.
	Get(ctx context.Context, safeName string) (*models.Cocktail, error)
	ReplaceAll(ctx context.Context, cocktails []models.Cocktail) error
	// SaveIngredients reports false when the cocktail does not exist.
	SaveIngredients(ctx context.Context, safeName string, ing *models.Ingredients) (bool, error)
}

// SettingsRepo is a flat key/value store shared by calibration, selection
// and any other process setting.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.RigEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.RigEvent, error)
}

type Repository struct {
	Pumps     PumpRepo
	Cocktails CocktailRepo
	Settings  SettingsRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Pumps:     NewPumpSQLite(db),
		Cocktails: NewCocktailSQLite(db),
		Settings:  NewSettingsSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
