package pricing

import (
	"context"

	"sharedeck/internal/apperr"
	"sharedeck/internal/core"
)

type Service struct {
	repo   Repository
	items  core.ItemReader
	stores core.StoreReader
}

func NewService(repo Repository, items core.ItemReader, stores core.StoreReader) *Service {
	return &Service{repo: repo, items: items, stores: stores}
}

func (s *Service) List(ctx context.Context, userID, itemID string) ([]PriceEntry, error) {
	if err := s.ownItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.repo.ListByItem(ctx, itemID)
}

// Set records a price, or nil for out of stock. Repeating the call with the
// same value leaves a single entry.
func (s *Service) Set(ctx context.Context, userID, itemID, storeID string, price *int) (*PriceEntry, error) {
	if price != nil && (*price < MinPrice || *price > MaxPrice) {
		return nil, apperr.Unprocessable("price must be between %d and %d", MinPrice, MaxPrice)
	}
	if err := s.ownItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.ownStore(ctx, userID, storeID); err != nil {
		return nil, err
	}

	e := &PriceEntry{ItemID: itemID, StoreID: storeID, Price: price}
	if err := s.repo.Upsert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID, itemID, storeID string) error {
	if err := s.ownItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.ownStore(ctx, userID, storeID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, itemID, storeID)
}

func (s *Service) ownItem(ctx context.Context, userID, itemID string) error {
	own, err := s.items.ItemOwnership(ctx, itemID)
	if err != nil {
		return err
	}
	if own.OwnerID != userID {
		return apperr.NotFound("purchase item not found")
	}
	return nil
}

func (s *Service) ownStore(ctx context.Context, userID, storeID string) error {
	ref, err := s.stores.StoreRef(ctx, storeID)
	if err != nil {
		return err
	}
	if ref.OwnerID != userID {
		return apperr.NotFound("store not found")
	}
	return nil
}
