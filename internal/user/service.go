package user

import (
	"context"
	"strings"

	"sharedeck/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Sync records the caller's identity-provider profile, creating the user on
// first sight.
func (s *Service) Sync(ctx context.Context, p Profile) (*User, error) {
	if p.GoogleID == "" {
		return nil, apperr.Unprocessable("missing subject")
	}

	u := &User{
		GoogleID: p.GoogleID,
		Email:    strings.TrimSpace(p.Email),
		Nickname: optional(p.Name),
		Image:    optional(p.Picture),
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResolveGoogleID maps a token subject to a stored user.
func (s *Service) ResolveGoogleID(ctx context.Context, googleID string) (*User, error) {
	return s.repo.FindByGoogleID(ctx, googleID)
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
