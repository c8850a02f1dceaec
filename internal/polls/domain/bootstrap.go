package domain

// AdminSeed describes an admin account created at startup when missing.
type AdminSeed struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}
