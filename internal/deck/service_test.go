package deck

import (
	"context"
	"errors"
	"testing"

	"sharedeck/internal/apperr"
	"sharedeck/internal/card"
	"sharedeck/internal/db/dbtest"
)

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) (*Service, *card.Service, string, string, string) {
	t.Helper()
	conn := dbtest.New(t)
	alice := dbtest.SeedUser(t, conn, "shanks@example.com")
	bob := dbtest.SeedUser(t, conn, "buggy@example.com")
	cardID := dbtest.SeedCard(t, conn, "ST01-001", "Monkey.D.Luffy")

	cards := card.NewService(card.NewPostgresRepository(conn), nil)
	return NewService(NewPostgresRepository(conn), cards), cards, alice, bob, cardID
}

func TestCreateDeck(t *testing.T) {
	svc, cards, alice, bob, cardID := newTestService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, alice, "  Red Luffy  ", nil, card.Catalog(cardID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.Name != "Red Luffy" || d.Status != StatusBuilt {
		t.Errorf("unexpected deck %+v", d)
	}
	if d.LeaderCard == nil || d.LeaderCard.CardID != "ST01-001" || d.CustomCard != nil {
		t.Errorf("leader not resolved: %+v %+v", d.LeaderCard, d.CustomCard)
	}

	custom, err := cards.CreateCustomCard(ctx, bob, "Buggy proxy", "Blue", strPtr("Red"))
	if err != nil {
		t.Fatalf("custom card: %v", err)
	}

	tests := []struct {
		name   string
		deck   string
		status *string
		leader card.Reference
		want   error
	}{
		{"blank name", " ", nil, card.Catalog(cardID), apperr.ErrUnprocessable},
		{"bad status", "Deck", strPtr("retired"), card.Catalog(cardID), apperr.ErrUnprocessable},
		{"unknown card", "Deck", nil, card.Catalog("missing"), apperr.ErrNotFound},
		{"foreign custom card", "Deck", nil, card.Custom(custom.ID), apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, alice, tt.deck, tt.status, tt.leader); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	own, err := svc.Create(ctx, bob, "Clown", strPtr(StatusPlanning), card.Custom(custom.ID))
	if err != nil {
		t.Fatalf("create with custom leader: %v", err)
	}
	if own.CustomCard == nil || own.CustomCard.Name != "Buggy proxy" || own.LeaderCard != nil {
		t.Errorf("custom leader not resolved: %+v", own)
	}
}

func TestDeckOwnership(t *testing.T) {
	svc, _, alice, bob, cardID := newTestService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, alice, "Mine", nil, card.Catalog(cardID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, bob, d.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign get must be not found, got %v", err)
	}
	if _, err := svc.Update(ctx, bob, d.ID, strPtr("Stolen"), nil); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign update must be not found, got %v", err)
	}
	if err := svc.Delete(ctx, bob, d.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign delete must be not found, got %v", err)
	}

	updated, err := svc.Update(ctx, alice, d.ID, nil, strPtr(StatusPlanning))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Mine" || updated.Status != StatusPlanning {
		t.Errorf("unexpected update %+v", updated)
	}

	if err := svc.Delete(ctx, alice, d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	decks, _ := svc.List(ctx, alice)
	if len(decks) != 0 {
		t.Errorf("expected no decks, got %d", len(decks))
	}
}

func TestGroupedDecks(t *testing.T) {
	svc, _, alice, bob, cardID := newTestService(t)
	ctx := context.Background()

	for _, tc := range []struct{ user, name string }{
		{alice, "First"},
		{bob, "Second"},
		{alice, "Third"},
	} {
		if _, err := svc.Create(ctx, tc.user, tc.name, nil, card.Catalog(cardID)); err != nil {
			t.Fatalf("create %s: %v", tc.name, err)
		}
	}

	g, err := svc.Grouped(ctx)
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if g.TotalCount != 3 || len(g.Decks) != 3 {
		t.Fatalf("total = %d", g.TotalCount)
	}
	if g.Decks[0].Name != "Third" || g.Decks[2].Name != "First" {
		t.Errorf("decks must be newest first: %s, %s", g.Decks[0].Name, g.Decks[2].Name)
	}
	if len(g.Users) != 2 || g.Users[0].ID != alice || g.Users[1].ID != bob {
		t.Errorf("unexpected users %+v", g.Users)
	}
	if g.Decks[1].User.Email != "buggy@example.com" {
		t.Errorf("deck owner not attached: %+v", g.Decks[1].User)
	}
}
