package user

import (
	"context"
	"errors"
	"testing"

	"sharedeck/internal/apperr"
	"sharedeck/internal/db/dbtest"
)

func TestPostgresRepositoryUpsert(t *testing.T) {
	repo := NewPostgresRepository(dbtest.New(t))
	ctx := context.Background()

	nick := "Robin"
	u := &User{GoogleID: "g-robin", Email: "robin@example.com", Nickname: &nick}
	if err := repo.Upsert(ctx, u); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if u.ID == "" || u.Role != RoleMember || !u.IsActive {
		t.Fatalf("stored fields not filled: %+v", u)
	}
	firstID := u.ID

	again := &User{GoogleID: "g-robin", Email: "nico.robin@example.com"}
	if err := repo.Upsert(ctx, again); err != nil {
		t.Fatalf("update: %v", err)
	}
	if again.ID != firstID {
		t.Errorf("upsert must keep id")
	}
	if again.Email != "nico.robin@example.com" || again.Nickname != nil {
		t.Errorf("profile not refreshed: %+v", again)
	}

	byID, err := repo.FindByID(ctx, firstID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.GoogleID != "g-robin" {
		t.Errorf("unexpected user %+v", byID)
	}

	if _, err := repo.FindByGoogleID(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
