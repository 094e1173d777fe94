package store

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"sharedeck/internal/apperr"
	"sharedeck/internal/core"
)

type Service struct {
	repo     Repository
	backfill core.PriceBackfiller
}

func NewService(repo Repository, backfill core.PriceBackfiller) *Service {
	return &Service{repo: repo, backfill: backfill}
}

func (s *Service) List(ctx context.Context, userID string) ([]Store, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID, name, color string) (*Store, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	color, err = normalizeColor(color)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.NameTaken(ctx, userID, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("store with name '%s' already exists", name)
	}

	st := &Store{UserID: userID, Name: name, Color: color}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	if s.backfill != nil {
		if err := s.backfill.OnStoreCreated(ctx, userID, st.ID); err != nil {
			slog.Warn("price backfill failed", "store_id", st.ID, "error", err)
		}
	}
	return st, nil
}

// Update changes name and/or color. nil fields are left untouched.
func (s *Service) Update(ctx context.Context, userID, storeID string, name, color *string) (*Store, error) {
	st, err := s.owned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		newName, err := normalizeName(*name)
		if err != nil {
			return nil, err
		}
		if newName != st.Name {
			taken, err := s.repo.NameTaken(ctx, userID, newName, st.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.Conflict("store with name '%s' already exists", newName)
			}
			st.Name = newName
		}
	}

	if color != nil {
		newColor, err := normalizeColor(*color)
		if err != nil {
			return nil, err
		}
		st.Color = newColor
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Delete(ctx context.Context, userID, storeID string) error {
	if _, err := s.owned(ctx, userID, storeID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, storeID)
}

// owned hides stores of other users behind the same not-found signal.
func (s *Service) owned(ctx context.Context, userID, storeID string) (*Store, error) {
	st, err := s.repo.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st.UserID != userID {
		return nil, apperr.NotFound("store not found")
	}
	return st, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Unprocessable("store name cannot be empty or whitespace-only")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperr.Unprocessable("store name must be 1-%d characters", maxNameLength)
	}
	return name, nil
}

// normalizeColor accepts #RRGGBB in any case and returns it uppercased.
func normalizeColor(color string) (string, error) {
	if len(color) != 7 || color[0] != '#' {
		return "", apperr.Unprocessable("color must be in hex format (e.g. #FF5733)")
	}
	for _, ch := range color[1:] {
		isHex := (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
		if !isHex {
			return "", apperr.Unprocessable("invalid hex color code")
		}
	}
	return strings.ToUpper(color), nil
}
