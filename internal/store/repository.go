package store

import (
	"context"

	"sharedeck/internal/core"
)

type Repository interface {
	Create(ctx context.Context, s *Store) error
	Get(ctx context.Context, id string) (*Store, error)
	ListByOwner(ctx context.Context, userID string) ([]Store, error)
	Update(ctx context.Context, s *Store) error
	Delete(ctx context.Context, id string) error
	NameTaken(ctx context.Context, userID, name, exceptID string) (bool, error)

	core.StoreReader
}
