package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cocktail_rig/internal/models"
)

type PumpSQLite struct {
	db *sql.DB
}

func NewPumpSQLite(db *sql.DB) *PumpSQLite {
	return &PumpSQLite{db: db}
}

const (
	selectPumpConfigSQL = `SELECT pump, ingredient FROM pump_config ORDER BY pump ASC`
	deletePumpConfigSQL = `DELETE FROM pump_config`
	insertPumpSQL       = `INSERT INTO pump_config (pump, ingredient) VALUES (?, ?)`
)

// Load reads the whole assignment. An empty table is an empty config.
func (r *PumpSQLite) Load(ctx context.Context) (models.PumpConfig, error) {
	rows, err := r.db.QueryContext(ctx, selectPumpConfigSQL)
	if err != nil {
		return nil, fmt.Errorf("select pump config: %w", err)
	}
	defer rows.Close()

	cfg := models.PumpConfig{}
	for rows.Next() {
		var (
			pump       int
			ingredient string
		)
		if err := rows.Scan(&pump, &ingredient); err != nil {
			return nil, fmt.Errorf("scan pump config: %w", err)
		}
		cfg[pump] = ingredient
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save replaces the assignment in one transaction. Unassigned pumps are not stored.
func (r *PumpSQLite) Save(ctx context.Context, cfg models.PumpConfig) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin pump config tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deletePumpConfigSQL); err != nil {
		return fmt.Errorf("clear pump config: %w", err)
	}
	for _, pump := range cfg.Pumps() {
		if _, err := tx.ExecContext(ctx, insertPumpSQL, pump, cfg[pump]); err != nil {
			return fmt.Errorf("insert pump %d: %w", pump, err)
		}
	}
	return tx.Commit()
}
