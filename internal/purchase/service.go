package purchase

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"sharedeck/internal/apperr"
	"sharedeck/internal/card"
	"sharedeck/internal/core"
)

// CardResolver confirms a card reference is usable by the user.
type CardResolver interface {
	Resolve(ctx context.Context, userID string, ref card.Reference) error
}

type Service struct {
	repo     Repository
	cards    CardResolver
	stores   core.StoreReader
	backfill core.PriceBackfiller
}

func NewService(repo Repository, cards CardResolver, stores core.StoreReader, backfill core.PriceBackfiller) *Service {
	return &Service{repo: repo, cards: cards, stores: stores, backfill: backfill}
}

// --------------------------------------------------
// Lists
// --------------------------------------------------

func (s *Service) Lists(ctx context.Context, userID string) ([]List, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *Service) GetList(ctx context.Context, userID, listID string) (*List, error) {
	return s.OwnedList(ctx, userID, listID)
}

func (s *Service) CreateList(ctx context.Context, userID string, name, status *string) (*List, error) {
	l := &List{UserID: userID, Status: StatusPlanning}

	if err := applyListChanges(l, name, status); err != nil {
		return nil, err
	}
	if err := s.repo.CreateList(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) UpdateList(ctx context.Context, userID, listID string, name, status *string) (*List, error) {
	l, err := s.OwnedList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if err := applyListChanges(l, name, status); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateList(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) DeleteList(ctx context.Context, userID, listID string) error {
	if _, err := s.OwnedList(ctx, userID, listID); err != nil {
		return err
	}
	return s.repo.DeleteList(ctx, listID)
}

// OwnedList never distinguishes "missing" from "someone else's".
func (s *Service) OwnedList(ctx context.Context, userID, listID string) (*List, error) {
	l, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, apperr.NotFound("purchase list not found")
	}
	return l, nil
}

// applyListChanges treats a nil field as unchanged and a blank name as
// clearing it.
func applyListChanges(l *List, name, status *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		switch {
		case trimmed == "":
			l.Name = nil
		case utf8.RuneCountInString(trimmed) > maxListNameLength:
			return apperr.Unprocessable("purchase list name must be %d characters or less", maxListNameLength)
		default:
			l.Name = &trimmed
		}
	}

	if status != nil {
		switch *status {
		case StatusPlanning, StatusPurchased:
			l.Status = *status
		default:
			return apperr.Unprocessable("status must be planning or purchased")
		}
	}
	return nil
}

// --------------------------------------------------
// Items
// --------------------------------------------------

func (s *Service) Items(ctx context.Context, userID, listID string) ([]ItemView, error) {
	if _, err := s.OwnedList(ctx, userID, listID); err != nil {
		return nil, err
	}
	return s.repo.ListItemViews(ctx, listID)
}

func (s *Service) CreateItem(ctx context.Context, userID, listID string, ref card.Reference, quantity int, selectedStoreID *string) (*Item, error) {
	if _, err := s.OwnedList(ctx, userID, listID); err != nil {
		return nil, err
	}
	if ref.IsZero() {
		return nil, apperr.Unprocessable("either card_id or custom_card_id must be provided")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.cards.Resolve(ctx, userID, ref); err != nil {
		return nil, err
	}
	selectedStoreID = storeIDOrNil(selectedStoreID)
	if err := s.checkStore(ctx, userID, selectedStoreID); err != nil {
		return nil, err
	}

	item := &Item{
		ListID:          listID,
		Card:            ref,
		Quantity:        quantity,
		SelectedStoreID: selectedStoreID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	if s.backfill != nil {
		if err := s.backfill.OnItemCreated(ctx, userID, item.ID); err != nil {
			slog.Warn("price backfill failed", "item_id", item.ID, "error", err)
		}
	}
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, userID, listID, itemID string, quantity *int, selectedStoreID *string) (*Item, error) {
	item, err := s.itemInList(ctx, userID, listID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity != nil {
		if err := validateQuantity(*quantity); err != nil {
			return nil, err
		}
		item.Quantity = *quantity
	}
	// A blank store id clears the selection.
	if selectedStoreID != nil {
		storeID := storeIDOrNil(selectedStoreID)
		if err := s.checkStore(ctx, userID, storeID); err != nil {
			return nil, err
		}
		item.SelectedStoreID = storeID
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, userID, listID, itemID string) error {
	if _, err := s.itemInList(ctx, userID, listID, itemID); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, itemID)
}

func (s *Service) itemInList(ctx context.Context, userID, listID, itemID string) (*Item, error) {
	if _, err := s.OwnedList(ctx, userID, listID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.ListID != listID {
		return nil, apperr.NotFound("purchase item not found")
	}
	return item, nil
}

func storeIDOrNil(storeID *string) *string {
	if storeID == nil || strings.TrimSpace(*storeID) == "" {
		return nil
	}
	return storeID
}

func (s *Service) checkStore(ctx context.Context, userID string, storeID *string) error {
	if storeID == nil {
		return nil
	}
	ref, err := s.stores.StoreRef(ctx, *storeID)
	if err != nil {
		return err
	}
	if ref.OwnerID != userID {
		return apperr.NotFound("store not found")
	}
	return nil
}

func validateQuantity(q int) error {
	if q < MinQuantity || q > MaxQuantity {
		return apperr.InvalidQuantity("quantity must be between %d and %d", MinQuantity, MaxQuantity)
	}
	return nil
}
