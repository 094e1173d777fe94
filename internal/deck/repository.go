package deck

import "context"

type Repository interface {
	Create(ctx context.Context, d *Deck) error
	Get(ctx context.Context, id string) (*Deck, error)
	GetView(ctx context.Context, id string) (*View, error)
	ListByOwner(ctx context.Context, userID string) ([]View, error)
	ListAll(ctx context.Context) (*Grouped, error)
	Update(ctx context.Context, d *Deck) error
	Delete(ctx context.Context, id string) error
}
