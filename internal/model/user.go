package model

import "time"

// User roles.  ADMIN manages fleet and flights, EMPLOYEE operates
// reservations and reports, CUSTOMER books for themselves.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleCustomer = "CUSTOMER"
)

// User is an authenticated account.  Passwords are stored as bcrypt
// hashes; sessions use short-lived JWT access tokens plus hashed refresh
// tokens persisted in the database.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
