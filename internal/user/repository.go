package user

import "context"

type Repository interface {
	// Upsert inserts or refreshes the user keyed by GoogleID and fills in
	// the stored fields (id, role, timestamps).
	Upsert(ctx context.Context, u *User) error
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}
