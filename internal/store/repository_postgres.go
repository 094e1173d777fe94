package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/apperr"
	"sharedeck/internal/core"
	"sharedeck/internal/db"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create keeps a preset CreatedAt so imports can preserve ordering.
func (r *PostgresRepository) Create(ctx context.Context, s *Store) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().UnixNano()
	}
	s.UpdatedAt = s.CreatedAt

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO stores (id, user_id, name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), s.ID, s.UserID, s.Name, s.Color, s.CreatedAt, s.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("store with name '%s' already exists", s.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Store, error) {
	var s Store
	err := r.db.GetContext(ctx, &s, r.db.Rebind(`
		SELECT id, user_id, name, color, created_at, updated_at
		FROM stores
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("store not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return &s, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]Store, error) {
	stores := []Store{}
	err := r.db.SelectContext(ctx, &stores, r.db.Rebind(`
		SELECT id, user_id, name, color, created_at, updated_at
		FROM stores
		WHERE user_id = ?
		ORDER BY created_at, id
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *Store) error {
	s.UpdatedAt = time.Now().UnixNano()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE stores SET name = ?, color = ?, updated_at = ? WHERE id = ?
	`), s.Name, s.Color, s.UpdatedAt, s.ID)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("store with name '%s' already exists", s.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM stores WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return nil
}

func (r *PostgresRepository) NameTaken(ctx context.Context, userID, name, exceptID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, r.db.Rebind(`
		SELECT COUNT(*) FROM stores WHERE user_id = ? AND name = ? AND id <> ?
	`), userID, name, exceptID)
	if err != nil {
		return false, fmt.Errorf("failed to check store name: %w", err)
	}
	return count > 0, nil
}

func (r *PostgresRepository) StoreRef(ctx context.Context, storeID string) (*core.StoreRef, error) {
	s, err := r.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return &core.StoreRef{ID: s.ID, OwnerID: s.UserID, Name: s.Name, Color: s.Color}, nil
}
