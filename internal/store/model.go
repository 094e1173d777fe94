package store

// Store is a purchasing venue owned by one user. Creation order is
// significant: it breaks price ties in the optimal plan.
type Store struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"user_id"`
	Name      string `db:"name" json:"name"`
	Color     string `db:"color" json:"color"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
	UpdatedAt int64  `db:"updated_at" json:"updated_at"`
}

const maxNameLength = 50
