package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a dashboard account. PasswordHash is a bcrypt hash and is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the acting user for the current request: just enough to
// answer permission questions. It is reconstructed per request from the
// session token and carries no pointer back to the stored User.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Guest is the identity used when no valid session token is presented.
// It holds no elevated rights.
var Guest = Identity{Username: "guest", Role: RoleUser}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
