package domain

import "time"

// Role is the account type carried in the "user_type" field and token claim.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string // argon2 encoded
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Registration is the input to account creation.
type Registration struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      Role
}
