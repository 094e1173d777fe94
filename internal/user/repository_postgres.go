package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/apperr"
)

const userColumns = `id, google_id, email, nickname, image, role, is_active, created_at, updated_at`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, u *User) error {
	now := time.Now().UnixNano()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO users (id, google_id, email, nickname, image, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, TRUE, ?, ?)
		ON CONFLICT (google_id) DO UPDATE
		SET email = excluded.email,
		    nickname = excluded.nickname,
		    image = excluded.image,
		    updated_at = excluded.updated_at
	`), uuid.NewString(), u.GoogleID, u.Email, u.Nickname, u.Image, RoleMember, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	stored, err := r.FindByGoogleID(ctx, u.GoogleID)
	if err != nil {
		return err
	}
	*u = *stored
	return nil
}

func (r *PostgresRepository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = ?`, googleID)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}
