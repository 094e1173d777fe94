package deck

import (
	"context"
	"strings"
	"unicode/utf8"

	"sharedeck/internal/apperr"
	"sharedeck/internal/card"
)

type CardResolver interface {
	Resolve(ctx context.Context, userID string, ref card.Reference) error
}

type Service struct {
	repo  Repository
	cards CardResolver
}

func NewService(repo Repository, cards CardResolver) *Service {
	return &Service{repo: repo, cards: cards}
}

func (s *Service) List(ctx context.Context, userID string) ([]View, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *Service) Grouped(ctx context.Context) (*Grouped, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, userID, deckID string) (*View, error) {
	if _, err := s.owned(ctx, userID, deckID); err != nil {
		return nil, err
	}
	return s.repo.GetView(ctx, deckID)
}

func (s *Service) Create(ctx context.Context, userID, name string, status *string, leader card.Reference) (*View, error) {
	d := &Deck{UserID: userID, Status: StatusBuilt, Leader: leader}
	if err := applyChanges(d, &name, status); err != nil {
		return nil, err
	}
	if leader.IsZero() {
		return nil, apperr.Unprocessable("either leader_card_id or custom_card_id must be provided")
	}
	if err := s.cards.Resolve(ctx, userID, leader); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return s.repo.GetView(ctx, d.ID)
}

// Update changes name and status. The leader is fixed for a deck's life.
func (s *Service) Update(ctx context.Context, userID, deckID string, name, status *string) (*View, error) {
	d, err := s.owned(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}
	if err := applyChanges(d, name, status); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return s.repo.GetView(ctx, deckID)
}

func (s *Service) Delete(ctx context.Context, userID, deckID string) error {
	if _, err := s.owned(ctx, userID, deckID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, deckID)
}

func (s *Service) owned(ctx context.Context, userID, deckID string) (*Deck, error) {
	d, err := s.repo.Get(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, apperr.NotFound("deck not found")
	}
	return d, nil
}

func applyChanges(d *Deck, name, status *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return apperr.Unprocessable("deck name cannot be empty")
		}
		if utf8.RuneCountInString(trimmed) > maxNameLength {
			return apperr.Unprocessable("deck name must be %d characters or less", maxNameLength)
		}
		d.Name = trimmed
	}
	if status != nil {
		if *status != StatusBuilt && *status != StatusPlanning {
			return apperr.Unprocessable("status must be built or planning")
		}
		d.Status = *status
	}
	return nil
}
