package cardsync

import (
	"context"
	"fmt"
	"log/slog"

	"sharedeck/internal/card"
	"sharedeck/internal/metrics"
	"sharedeck/internal/storage"
)

// Source yields the current card list and serves image downloads.
type Source interface {
	Fetch(ctx context.Context) ([]ScrapedCard, error)
	Download(ctx context.Context, imageURL string) ([]byte, string, error)
}

// ObjectStore is the subset of storage.R2Client used for mirroring.
type ObjectStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	PublicURL(key string) string
}

type CardStore interface {
	UpsertCard(ctx context.Context, c *card.Card) (bool, error)
}

type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

// Result summarizes one sync run.
type Result struct {
	NewCards     int      `json:"new_cards"`
	UpdatedCards int      `json:"updated_cards"`
	TotalCards   int      `json:"total_cards"`
	Errors       []string `json:"errors"`
}

type Syncer struct {
	source  Source
	objects ObjectStore
	cards   CardStore
	catalog CatalogInvalidator
}

// NewSyncer wires a sync run. objects may be nil, in which case cards keep
// pointing at the source image URLs.
func NewSyncer(source Source, objects ObjectStore, cards CardStore, catalog CatalogInvalidator) *Syncer {
	return &Syncer{source: source, objects: objects, cards: cards, catalog: catalog}
}

// Run fetches the card list, mirrors images and upserts every card. A card
// whose image cannot be mirrored is skipped and reported in Result.Errors.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	scraped, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.CardSyncRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	res := &Result{TotalCards: len(scraped), Errors: []string{}}
	for _, sc := range scraped {
		imagePath, err := s.mirror(ctx, sc)
		if err != nil {
			slog.Warn("card image mirror failed", "card_id", sc.CardID, "error", err)
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", sc.CardID, err))
			continue
		}

		created, err := s.cards.UpsertCard(ctx, &card.Card{
			CardID:    sc.CardID,
			Name:      sc.Name,
			Color:     sc.Color,
			BlockIcon: sc.BlockIcon,
			ImagePath: imagePath,
		})
		if err != nil {
			slog.Warn("card upsert failed", "card_id", sc.CardID, "error", err)
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", sc.CardID, err))
			continue
		}
		if created {
			res.NewCards++
		} else {
			res.UpdatedCards++
		}
	}

	if s.catalog != nil {
		s.catalog.InvalidateCatalog(ctx)
	}

	result := "ok"
	if len(res.Errors) > 0 {
		result = "partial"
	}
	metrics.CardSyncRuns.WithLabelValues(result).Inc()

	slog.Info("card sync finished",
		"new", res.NewCards,
		"updated", res.UpdatedCards,
		"total", res.TotalCards,
		"errors", len(res.Errors),
	)
	return res, nil
}

func (s *Syncer) mirror(ctx context.Context, sc ScrapedCard) (string, error) {
	if s.objects == nil {
		return sc.ImageURL, nil
	}

	key := storage.CardImageKey(sc.CardID)
	exists, err := s.objects.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		return s.objects.PublicURL(key), nil
	}

	body, contentType, err := s.source.Download(ctx, sc.ImageURL)
	if err != nil {
		return "", err
	}
	return s.objects.Put(ctx, key, body, contentType)
}
