package user

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID        string  `db:"id" json:"id"`
	GoogleID  string  `db:"google_id" json:"google_id"`
	Email     string  `db:"email" json:"email"`
	Nickname  *string `db:"nickname" json:"nickname"`
	Image     *string `db:"image" json:"image"`
	Role      string  `db:"role" json:"role"`
	IsActive  bool    `db:"is_active" json:"is_active"`
	CreatedAt int64   `db:"created_at" json:"created_at"`
	UpdatedAt int64   `db:"updated_at" json:"updated_at"`
}

// Profile is what the identity provider tells us about the caller.
type Profile struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}
