package deck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/apperr"
	"sharedeck/internal/card"
)

const viewSelect = `
	SELECT
		d.id, d.user_id, d.name, d.status, d.leader_card_id, d.custom_card_id,
		d.created_at, d.updated_at,
		c.card_id AS card_code, c.name AS card_name, c.color AS card_color,
		c.image_path AS card_image_path,
		cc.name AS custom_name, cc.color AS custom_color, cc.color2 AS custom_color2,
		u.nickname AS owner_nickname, u.email AS owner_email, u.image AS owner_image
	FROM decks d
	JOIN users u ON u.id = d.user_id
	LEFT JOIN cards c ON c.id = d.leader_card_id
	LEFT JOIN custom_cards cc ON cc.id = d.custom_card_id
`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, d *Deck) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt == 0 {
		d.CreatedAt = time.Now().UnixNano()
	}
	d.UpdatedAt = d.CreatedAt
	cardID, customCardID := d.Leader.Columns()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO decks (id, user_id, name, status, leader_card_id, custom_card_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), d.ID, d.UserID, d.Name, d.Status, cardID, customCardID, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create deck: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Deck, error) {
	var row struct {
		ID           string  `db:"id"`
		UserID       string  `db:"user_id"`
		Name         string  `db:"name"`
		Status       string  `db:"status"`
		LeaderCardID *string `db:"leader_card_id"`
		CustomCardID *string `db:"custom_card_id"`
		CreatedAt    int64   `db:"created_at"`
		UpdatedAt    int64   `db:"updated_at"`
	}
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT id, user_id, name, status, leader_card_id, custom_card_id, created_at, updated_at
		FROM decks
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("deck not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	leader, err := card.ParseReference(row.LeaderCardID, row.CustomCardID)
	if err != nil {
		return nil, err
	}
	return &Deck{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Status:    row.Status,
		Leader:    leader,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *PostgresRepository) GetView(ctx context.Context, id string) (*View, error) {
	var row viewRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(viewSelect+` WHERE d.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("deck not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	v := row.toView()
	return &v, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]View, error) {
	var rows []viewRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(viewSelect+`
		WHERE d.user_id = ?
		ORDER BY d.created_at, d.id
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toView())
	}
	return views, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) (*Grouped, error) {
	var rows []viewRow
	err := r.db.SelectContext(ctx, &rows, viewSelect+` ORDER BY d.created_at DESC, d.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list all decks: %w", err)
	}

	g := &Grouped{Users: []UserSummary{}, Decks: make([]DeckWithUser, 0, len(rows))}
	seen := map[string]bool{}
	for _, row := range rows {
		owner := row.owner()
		if !seen[owner.ID] {
			seen[owner.ID] = true
			g.Users = append(g.Users, owner)
		}
		g.Decks = append(g.Decks, DeckWithUser{
			ID:         row.ID,
			Name:       row.Name,
			Status:     row.Status,
			User:       owner,
			LeaderCard: row.leaderCard(),
			CustomCard: row.customLeader(),
			CreatedAt:  row.CreatedAt,
		})
	}
	g.TotalCount = len(g.Decks)
	return g, nil
}

func (r *PostgresRepository) Update(ctx context.Context, d *Deck) error {
	d.UpdatedAt = time.Now().UnixNano()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE decks SET name = ?, status = ?, updated_at = ? WHERE id = ?
	`), d.Name, d.Status, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update deck: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM decks WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	return nil
}
