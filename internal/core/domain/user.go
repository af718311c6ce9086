package domain

import "time"

// RoleName is the stable string form of an authorization label.
type RoleName string

const (
	RoleAdmin  RoleName = "ADMIN"
	RoleAgent  RoleName = "AGENT"
	RoleClient RoleName = "CLIENT"
)

// Roles lists every role the back office knows about.
var Roles = []RoleName{RoleAdmin, RoleAgent, RoleClient}

// Valid reports whether r is one of the known roles.
func (r RoleName) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r RoleName) String() string { return string(r) }

// Role is shared by many users; users only hold a reference to it.
type Role struct {
	ID   string   `json:"id"`
	Name RoleName `json:"name"`
}

// User holds one account holder's credentials.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Enabled      bool      `json:"enabled"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal returns the authenticated identity view of u.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Login: u.Login, Role: u.Role.Name}
}

// Principal is the identity produced by a successful authentication.
// It never carries the password digest.
type Principal struct {
	UserID string   `json:"user_id,omitempty"`
	Login  string   `json:"login"`
	Role   RoleName `json:"role"`
}
