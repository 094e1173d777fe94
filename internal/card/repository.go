package card

import "context"

type Repository interface {
	// catalog
	ListCards(ctx context.Context) ([]Card, error)
	GetCard(ctx context.Context, id string) (*Card, error)
	UpsertCard(ctx context.Context, c *Card) (created bool, err error)
	UpdateImagePath(ctx context.Context, id, imagePath string) error

	// custom cards
	CreateCustomCard(ctx context.Context, cc *CustomCard) error
	GetCustomCard(ctx context.Context, id string) (*CustomCard, error)
	ListCustomCards(ctx context.Context, userID string) ([]CustomCard, error)
}
