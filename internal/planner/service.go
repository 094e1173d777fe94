package planner

import (
	"context"
	"errors"

	"sharedeck/internal/apperr"
	"sharedeck/internal/metrics"
	"sharedeck/internal/pricing"
)

type SnapshotLoader interface {
	Load(ctx context.Context, listID, userID string) (*pricing.Snapshot, error)
}

type Service struct {
	loader SnapshotLoader
}

func NewService(loader SnapshotLoader) *Service {
	return &Service{loader: loader}
}

func (s *Service) OptimalPlan(ctx context.Context, userID, listID string) (*Plan, error) {
	snap, err := s.loader.Load(ctx, listID, userID)
	if err != nil {
		outcome := "error"
		if errors.Is(err, apperr.ErrNotFound) {
			outcome = "not_found"
		}
		metrics.OptimalPlans.WithLabelValues(outcome).Inc()
		return nil, err
	}

	plan := Compute(snap)
	metrics.OptimalPlans.WithLabelValues("ok").Inc()
	return plan, nil
}
