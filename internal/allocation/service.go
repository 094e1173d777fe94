package allocation

import (
	"context"
	"errors"

	"sharedeck/internal/apperr"
	"sharedeck/internal/core"
	"sharedeck/internal/metrics"
)

type Service struct {
	repo   Repository
	items  core.ItemReader
	stores core.StoreReader
}

func NewService(repo Repository, items core.ItemReader, stores core.StoreReader) *Service {
	return &Service{repo: repo, items: items, stores: stores}
}

func (s *Service) List(ctx context.Context, userID, itemID string) ([]View, error) {
	if err := s.ownItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.repo.ListByItem(ctx, itemID)
}

func (s *Service) Create(ctx context.Context, userID, itemID, storeID string, quantity int) (v *View, err error) {
	defer func() { record("create", err) }()

	if err := s.ownItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	ref, err := s.ownStore(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	a := &Allocation{ItemID: itemID, StoreID: storeID, Quantity: quantity}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return newView(a, ref), nil
}

// Update changes only the quantity of an allocation.
func (s *Service) Update(ctx context.Context, userID, allocationID string, quantity int) (v *View, err error) {
	defer func() { record("update", err) }()

	a, err := s.owned(ctx, userID, allocationID)
	if err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	a.Quantity = quantity
	if err := s.repo.UpdateQuantity(ctx, a); err != nil {
		return nil, err
	}

	ref, err := s.stores.StoreRef(ctx, a.StoreID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	return newView(a, ref), nil
}

// Delete leaves the item's other allocations as they are.
func (s *Service) Delete(ctx context.Context, userID, allocationID string) (err error) {
	defer func() { record("delete", err) }()

	if _, err := s.owned(ctx, userID, allocationID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, allocationID)
}

func (s *Service) owned(ctx context.Context, userID, allocationID string) (*Allocation, error) {
	a, err := s.repo.Get(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	if err := s.ownItem(ctx, userID, a.ItemID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ownItem(ctx context.Context, userID, itemID string) error {
	own, err := s.items.ItemOwnership(ctx, itemID)
	if err != nil {
		return err
	}
	if own.OwnerID != userID {
		return apperr.Forbidden("not authorized to access this item")
	}
	return nil
}

func (s *Service) ownStore(ctx context.Context, userID, storeID string) (*core.StoreRef, error) {
	ref, err := s.stores.StoreRef(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if ref.OwnerID != userID {
		return nil, apperr.Forbidden("not authorized to use this store")
	}
	return ref, nil
}

func validateQuantity(q int) error {
	if q < MinQuantity || q > MaxQuantity {
		return apperr.InvalidQuantity("quantity must be between %d and %d", MinQuantity, MaxQuantity)
	}
	return nil
}

func record(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrInvalidQuantity):
		result = "rejected"
	case apperr.Status(err) < 500:
		result = "denied"
	default:
		result = "error"
	}
	metrics.AllocationWrites.WithLabelValues(op, result).Inc()
}
