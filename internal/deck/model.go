package deck

import "sharedeck/internal/card"

const (
	StatusBuilt    = "built"
	StatusPlanning = "planning"

	maxNameLength = 100
)

// Deck is built around exactly one leader, a catalog card or a custom one.
type Deck struct {
	ID        string
	UserID    string
	Name      string
	Status    string
	Leader    card.Reference
	CreatedAt int64
	UpdatedAt int64
}

type LeaderCard struct {
	ID        string `json:"id"`
	CardID    string `json:"card_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	ImagePath string `json:"image_path"`
}

type CustomLeader struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Color2 *string `json:"color2,omitempty"`
}

// View is a deck with its leader resolved for display.
type View struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Name         string        `json:"name"`
	Status       string        `json:"status"`
	LeaderCardID *string       `json:"leader_card_id"`
	CustomCardID *string       `json:"custom_card_id"`
	LeaderCard   *LeaderCard   `json:"leader_card"`
	CustomCard   *CustomLeader `json:"custom_card"`
	CreatedAt    int64         `json:"created_at"`
	UpdatedAt    int64         `json:"updated_at"`
}

type UserSummary struct {
	ID       string  `json:"id"`
	Nickname *string `json:"nickname"`
	Email    string  `json:"email"`
	Image    *string `json:"image"`
}

type DeckWithUser struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Status     string        `json:"status"`
	User       UserSummary   `json:"user"`
	LeaderCard *LeaderCard   `json:"leader_card"`
	CustomCard *CustomLeader `json:"custom_card"`
	CreatedAt  int64         `json:"created_at"`
}

// Grouped is every deck of every user, newest first, with each deck owner
// listed once in Users.
type Grouped struct {
	Users      []UserSummary  `json:"users"`
	Decks      []DeckWithUser `json:"decks"`
	TotalCount int            `json:"total_count"`
}

// viewRow is the flat result of joining a deck with its leader and owner.
type viewRow struct {
	ID           string  `db:"id"`
	UserID       string  `db:"user_id"`
	Name         string  `db:"name"`
	Status       string  `db:"status"`
	LeaderCardID *string `db:"leader_card_id"`
	CustomCardID *string `db:"custom_card_id"`
	CreatedAt    int64   `db:"created_at"`
	UpdatedAt    int64   `db:"updated_at"`

	CardCode      *string `db:"card_code"`
	CardName      *string `db:"card_name"`
	CardColor     *string `db:"card_color"`
	CardImagePath *string `db:"card_image_path"`

	CustomName   *string `db:"custom_name"`
	CustomColor  *string `db:"custom_color"`
	CustomColor2 *string `db:"custom_color2"`

	OwnerNickname *string `db:"owner_nickname"`
	OwnerEmail    string  `db:"owner_email"`
	OwnerImage    *string `db:"owner_image"`
}

func (r viewRow) leaderCard() *LeaderCard {
	if r.LeaderCardID == nil || r.CardName == nil {
		return nil
	}
	return &LeaderCard{
		ID:        *r.LeaderCardID,
		CardID:    deref(r.CardCode),
		Name:      *r.CardName,
		Color:     deref(r.CardColor),
		ImagePath: deref(r.CardImagePath),
	}
}

func (r viewRow) customLeader() *CustomLeader {
	if r.CustomCardID == nil || r.CustomName == nil {
		return nil
	}
	return &CustomLeader{
		ID:     *r.CustomCardID,
		Name:   *r.CustomName,
		Color:  deref(r.CustomColor),
		Color2: r.CustomColor2,
	}
}

func (r viewRow) toView() View {
	return View{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		Status:       r.Status,
		LeaderCardID: r.LeaderCardID,
		CustomCardID: r.CustomCardID,
		LeaderCard:   r.leaderCard(),
		CustomCard:   r.customLeader(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r viewRow) owner() UserSummary {
	return UserSummary{ID: r.UserID, Nickname: r.OwnerNickname, Email: r.OwnerEmail, Image: r.OwnerImage}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
