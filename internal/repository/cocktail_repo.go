package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"cocktail_rig/internal/models"
)

type CocktailSQLite struct {
	db *sql.DB
}

func NewCocktailSQLite(db *sql.DB) *CocktailSQLite {
	return &CocktailSQLite{db: db}
}

const (
	selectCocktailsSQL = `
		SELECT normal_name, fun_name, ingredients
		FROM cocktails ORDER BY position ASC
	`
	selectCocktailSQL = `
		SELECT normal_name, fun_name, ingredients
		FROM cocktails WHERE safe_name = ?
	`
	deleteCocktailsSQL = `DELETE FROM cocktails`
	insertCocktailSQL  = `
		INSERT INTO cocktails (safe_name, normal_name, fun_name, ingredients, position)
		VALUES (?, ?, ?, ?, ?)
	`
	updateIngredientsSQL = `UPDATE cocktails SET ingredients = ? WHERE safe_name = ?`
)

// marshalIngredients encodes the ordered map; a nil map is stored as {}.
func marshalIngredients(ing *models.Ingredients) (string, error) {
	if ing == nil {
		return "{}", nil
	}
	b, err := json.Marshal(ing)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalIngredients(s string) (*models.Ingredients, error) {
	ing := models.NewIngredients()
	if s == "" {
		return ing, nil
	}
	if err := json.Unmarshal([]byte(s), ing); err != nil {
		return nil, err
	}
	return ing, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCocktail(row rowScanner) (models.Cocktail, error) {
	var (
		c       models.Cocktail
		ingJSON string
	)
	if err := row.Scan(&c.NormalName, &c.FunName, &ingJSON); err != nil {
		return models.Cocktail{}, err
	}
	ing, err := unmarshalIngredients(ingJSON)
	if err != nil {
		return models.Cocktail{}, fmt.Errorf("decode ingredients of %q: %w", c.NormalName, err)
	}
	c.Ingredients = ing
	return c, nil
}

func (r *CocktailSQLite) List(ctx context.Context) ([]models.Cocktail, error) {
	rows, err := r.db.QueryContext(ctx, selectCocktailsSQL)
	if err != nil {
		return nil, fmt.Errorf("select cocktails: %w", err)
	}
	defer rows.Close()

	out := make([]models.Cocktail, 0, 16)
	for rows.Next() {
		c, err := scanCocktail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CocktailSQLite) Get(ctx context.Context, safeName string) (*models.Cocktail, error) {
	c, err := scanCocktail(r.db.QueryRowContext(ctx, selectCocktailSQL, safeName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select cocktail %q: %w", safeName, err)
	}
	return &c, nil
}

// ReplaceAll swaps the whole collection, keeping the given order.
func (r *CocktailSQLite) ReplaceAll(ctx context.Context, cocktails []models.Cocktail) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cocktails tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteCocktailsSQL); err != nil {
		return fmt.Errorf("clear cocktails: %w", err)
	}
	for i, c := range cocktails {
		ingJSON, err := marshalIngredients(c.Ingredients)
		if err != nil {
			return fmt.Errorf("encode ingredients of %q: %w", c.NormalName, err)
		}
		if _, err := tx.ExecContext(ctx, insertCocktailSQL,
			c.SafeName(), c.NormalName, c.FunName, ingJSON, i,
		); err != nil {
			return fmt.Errorf("insert cocktail %q: %w", c.NormalName, err)
		}
	}
	return tx.Commit()
}

func (r *CocktailSQLite) SaveIngredients(ctx context.Context, safeName string, ing *models.Ingredients) (bool, error) {
	ingJSON, err := marshalIngredients(ing)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, updateIngredientsSQL, ingJSON, safeName)
	if err != nil {
		return false, fmt.Errorf("update ingredients of %q: %w", safeName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
