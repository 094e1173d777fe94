package card

import (
	"sharedeck/internal/apperr"
)

type Kind int

const (
	KindCatalog Kind = iota + 1
	KindCustom
)

// Reference points at exactly one of a catalog card or a custom card. The
// zero value is not a valid reference; build one with Catalog or Custom.
type Reference struct {
	kind Kind
	id   string
}

func Catalog(id string) Reference {
	return Reference{kind: KindCatalog, id: id}
}

func Custom(id string) Reference {
	return Reference{kind: KindCustom, id: id}
}

func (r Reference) Kind() Kind   { return r.kind }
func (r Reference) ID() string   { return r.id }
func (r Reference) IsZero() bool { return r.kind == 0 || r.id == "" }

// Columns splits the reference into its two nullable storage columns.
func (r Reference) Columns() (cardID, customCardID *string) {
	id := r.id
	switch r.kind {
	case KindCatalog:
		return &id, nil
	case KindCustom:
		return nil, &id
	}
	return nil, nil
}

// ParseReference accepts the two optional ids of a request body and requires
// exactly one of them.
func ParseReference(cardID, customCardID *string) (Reference, error) {
	hasCard := cardID != nil && *cardID != ""
	hasCustom := customCardID != nil && *customCardID != ""

	switch {
	case hasCard && hasCustom:
		return Reference{}, apperr.Unprocessable("only one of card_id or custom_card_id can be provided")
	case hasCard:
		return Catalog(*cardID), nil
	case hasCustom:
		return Custom(*customCardID), nil
	default:
		return Reference{}, apperr.Unprocessable("either card_id or custom_card_id must be provided")
	}
}
