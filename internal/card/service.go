package card

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"sharedeck/internal/apperr"
)

type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Service{repo: repo, cache: cache}
}

// ListCards serves the catalog from cache when possible. Cache failures are
// logged and fall through to the database.
func (s *Service) ListCards(ctx context.Context) ([]Card, error) {
	cards, hit, err := s.cache.GetCards(ctx)
	if err != nil {
		slog.Warn("card cache read failed", "error", err)
	}
	if hit {
		return cards, nil
	}

	cards, err = s.repo.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCards(ctx, cards); err != nil {
		slog.Warn("card cache write failed", "error", err)
	}
	return cards, nil
}

func (s *Service) InvalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("card cache invalidation failed", "error", err)
	}
}

func (s *Service) CreateCustomCard(ctx context.Context, userID, name, color string, color2 *string) (*CustomCard, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)

	if name == "" {
		return nil, apperr.Unprocessable("card name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCustomNameLength {
		return nil, apperr.Unprocessable("card name must be %d characters or less", maxCustomNameLength)
	}
	if color == "" {
		return nil, apperr.Unprocessable("color cannot be empty")
	}
	if color2 != nil {
		trimmed := strings.TrimSpace(*color2)
		if trimmed == "" {
			color2 = nil
		} else {
			color2 = &trimmed
		}
	}

	cc := &CustomCard{
		UserID: userID,
		Name:   name,
		Color:  color,
		Color2: color2,
	}
	if err := s.repo.CreateCustomCard(ctx, cc); err != nil {
		return nil, err
	}
	return cc, nil
}

func (s *Service) ListCustomCards(ctx context.Context, userID string) ([]CustomCard, error) {
	return s.repo.ListCustomCards(ctx, userID)
}

// Resolve checks that ref points at something the user may use: any catalog
// card, or one of the user's own custom cards. Both failures are not-found.
func (s *Service) Resolve(ctx context.Context, userID string, ref Reference) error {
	switch ref.Kind() {
	case KindCatalog:
		_, err := s.repo.GetCard(ctx, ref.ID())
		return err
	case KindCustom:
		cc, err := s.repo.GetCustomCard(ctx, ref.ID())
		if err != nil {
			return err
		}
		if cc.UserID != userID {
			return apperr.NotFound("custom card not found")
		}
		return nil
	default:
		return apperr.Unprocessable("either card_id or custom_card_id must be provided")
	}
}
