// Package admin serves the maintenance endpoints restricted to admins.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"sharedeck/internal/card"
	"sharedeck/internal/cardsync"
	"sharedeck/internal/storage"
)

var ErrNoPublicURL = errors.New("R2_PUBLIC_URL is not configured")

const (
	sampleSize       = 5
	updatedListLimit = 10
)

type CardCatalog interface {
	ListCards(ctx context.Context) ([]card.Card, error)
	UpdateImagePath(ctx context.Context, id, imagePath string) error
}

type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

type SyncRunner interface {
	Run(ctx context.Context) (*cardsync.Result, error)
}

type Stats struct {
	TotalCards int `db:"total_cards" json:"total_cards"`
	TotalDecks int `db:"total_decks" json:"total_decks"`
	TotalUsers int `db:"total_users" json:"total_users"`
}

type ScrapeResult struct {
	Status       string   `json:"status"`
	NewCards     int      `json:"new_cards"`
	UpdatedCards int      `json:"updated_cards"`
	TotalCards   int      `json:"total_cards"`
	Errors       []string `json:"errors"`
	Message      string   `json:"message"`
}

type ImageCategories struct {
	R2URLs       int `json:"r2_urls"`
	ExternalURLs int `json:"external_urls"`
	LocalPaths   int `json:"local_paths"`
	Other        int `json:"other"`
}

type SampleURL struct {
	CardID    string `json:"card_id"`
	ImagePath string `json:"image_path"`
}

type MigrationStatus struct {
	Migrated       int  `json:"migrated"`
	NeedsMigration int  `json:"needs_migration"`
	IsComplete     bool `json:"is_complete"`
}

type ImageReport struct {
	TotalCards      int             `json:"total_cards"`
	Categories      ImageCategories `json:"categories"`
	SampleURLs      []SampleURL     `json:"sample_urls"`
	R2PublicURL     string          `json:"r2_public_url"`
	MigrationStatus MigrationStatus `json:"migration_status"`
}

type MigratedCard struct {
	CardID  string `json:"card_id"`
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

type MigrationResult struct {
	Status       string         `json:"status"`
	UpdatedCount int            `json:"updated_count"`
	SkippedCount int            `json:"skipped_count"`
	TotalCards   int            `json:"total_cards"`
	R2PublicURL  string         `json:"r2_public_url"`
	UpdatedCards []MigratedCard `json:"updated_cards"`
}

type Service struct {
	db        *sqlx.DB
	cards     CardCatalog
	catalog   CatalogInvalidator
	sync      SyncRunner
	publicURL string
}

func NewService(db *sqlx.DB, cards CardCatalog, catalog CatalogInvalidator, sync SyncRunner, publicURL string) *Service {
	return &Service{
		db:        db,
		cards:     cards,
		catalog:   catalog,
		sync:      sync,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.GetContext(ctx, &st, `
		SELECT
			(SELECT COUNT(*) FROM cards) AS total_cards,
			(SELECT COUNT(*) FROM decks) AS total_decks,
			(SELECT COUNT(*) FROM users) AS total_users
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return &st, nil
}

// Scrape runs a catalog sync. A failed run is reported in the result, not
// as an error.
func (s *Service) Scrape(ctx context.Context) *ScrapeResult {
	res, err := s.sync.Run(ctx)
	if err != nil {
		return &ScrapeResult{
			Status:  "error",
			Errors:  []string{err.Error()},
			Message: fmt.Sprintf("Scraping failed: %v", err),
		}
	}
	return &ScrapeResult{
		Status:       "success",
		NewCards:     res.NewCards,
		UpdatedCards: res.UpdatedCards,
		TotalCards:   res.TotalCards,
		Errors:       res.Errors,
		Message: fmt.Sprintf("Scraping completed successfully. Added %d new cards, updated %d cards.",
			res.NewCards, res.UpdatedCards),
	}
}

func (s *Service) CheckImageURLs(ctx context.Context) (*ImageReport, error) {
	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	report := &ImageReport{
		TotalCards:  len(cards),
		SampleURLs:  []SampleURL{},
		R2PublicURL: s.publicURL,
	}
	for i, c := range cards {
		if i < sampleSize {
			report.SampleURLs = append(report.SampleURLs, SampleURL{CardID: c.CardID, ImagePath: c.ImagePath})
		}

		path := c.ImagePath
		switch {
		case s.isMirrored(path):
			report.Categories.R2URLs++
		case strings.Contains(path, "onepiece-cardgame.com") || strings.HasPrefix(path, "http"):
			report.Categories.ExternalURLs++
		case strings.HasPrefix(path, "/") || strings.Contains(path, `:\`):
			report.Categories.LocalPaths++
		default:
			report.Categories.Other++
		}
	}

	needs := report.TotalCards - report.Categories.R2URLs
	report.MigrationStatus = MigrationStatus{
		Migrated:       report.Categories.R2URLs,
		NeedsMigration: needs,
		IsComplete:     needs == 0,
	}
	return report, nil
}

// MigrateImageURLs points every card that is not yet on the public bucket at
// its mirrored object. Objects themselves are not copied.
func (s *Service) MigrateImageURLs(ctx context.Context) (*MigrationResult, error) {
	if s.publicURL == "" {
		return nil, ErrNoPublicURL
	}

	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	res := &MigrationResult{
		TotalCards:   len(cards),
		R2PublicURL:  s.publicURL,
		UpdatedCards: []MigratedCard{},
	}
	for _, c := range cards {
		if s.isMirrored(c.ImagePath) {
			res.SkippedCount++
			continue
		}

		newPath := s.publicURL + "/" + storage.CardImageKey(c.CardID)
		if err := s.cards.UpdateImagePath(ctx, c.ID, newPath); err != nil {
			return nil, err
		}
		res.UpdatedCount++
		if len(res.UpdatedCards) < updatedListLimit {
			res.UpdatedCards = append(res.UpdatedCards, MigratedCard{CardID: c.CardID, OldPath: c.ImagePath, NewPath: newPath})
		}
	}

	res.Status = "no_changes_needed"
	if res.UpdatedCount > 0 {
		res.Status = "success"
		if s.catalog != nil {
			s.catalog.InvalidateCatalog(ctx)
		}
	}
	return res, nil
}

func (s *Service) isMirrored(path string) bool {
	return s.publicURL != "" && strings.HasPrefix(path, s.publicURL)
}
