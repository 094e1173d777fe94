package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/apperr"
	"sharedeck/internal/db"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListCards(ctx context.Context) ([]Card, error) {
	cards := []Card{}
	err := r.db.SelectContext(ctx, &cards, `
		SELECT id, card_id, name, color, block_icon, image_path, created_at, updated_at
		FROM cards
		ORDER BY card_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (r *PostgresRepository) GetCard(ctx context.Context, id string) (*Card, error) {
	var c Card
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`
		SELECT id, card_id, name, color, block_icon, image_path, created_at, updated_at
		FROM cards
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("card not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &c, nil
}

// UpsertCard matches on the catalog code. On insert c.ID is assigned.
func (r *PostgresRepository) UpsertCard(ctx context.Context, c *Card) (bool, error) {
	created := false
	now := time.Now().UnixNano()

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var existingID string
		err := tx.GetContext(ctx, &existingID, tx.Rebind(`SELECT id FROM cards WHERE card_id = ?`), c.CardID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if c.ID == "" {
				c.ID = uuid.NewString()
			}
			c.CreatedAt, c.UpdatedAt = now, now
			created = true
			_, err = tx.ExecContext(ctx, tx.Rebind(`
				INSERT INTO cards (id, card_id, name, color, block_icon, image_path, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`), c.ID, c.CardID, c.Name, c.Color, c.BlockIcon, c.ImagePath, c.CreatedAt, c.UpdatedAt)
			return err
		case err != nil:
			return err
		}

		c.ID = existingID
		c.UpdatedAt = now
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE cards
			SET name = ?, color = ?, block_icon = ?, image_path = ?, updated_at = ?
			WHERE id = ?
		`), c.Name, c.Color, c.BlockIcon, c.ImagePath, c.UpdatedAt, c.ID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to upsert card %s: %w", c.CardID, err)
	}
	return created, nil
}

func (r *PostgresRepository) UpdateImagePath(ctx context.Context, id, imagePath string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE cards SET image_path = ?, updated_at = ? WHERE id = ?
	`), imagePath, time.Now().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("failed to update image path: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Custom cards
// --------------------------------------------------

func (r *PostgresRepository) CreateCustomCard(ctx context.Context, cc *CustomCard) error {
	if cc.ID == "" {
		cc.ID = uuid.NewString()
	}
	now := time.Now().UnixNano()
	cc.CreatedAt, cc.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO custom_cards (id, user_id, name, color, color2, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), cc.ID, cc.UserID, cc.Name, cc.Color, cc.Color2, cc.CreatedAt, cc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create custom card: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetCustomCard(ctx context.Context, id string) (*CustomCard, error) {
	var cc CustomCard
	err := r.db.GetContext(ctx, &cc, r.db.Rebind(`
		SELECT id, user_id, name, color, color2, created_at, updated_at
		FROM custom_cards
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("custom card not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get custom card: %w", err)
	}
	return &cc, nil
}

func (r *PostgresRepository) ListCustomCards(ctx context.Context, userID string) ([]CustomCard, error) {
	cards := []CustomCard{}
	err := r.db.SelectContext(ctx, &cards, r.db.Rebind(`
		SELECT id, user_id, name, color, color2, created_at, updated_at
		FROM custom_cards
		WHERE user_id = ?
		ORDER BY created_at, id
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom cards: %w", err)
	}
	return cards, nil
}
