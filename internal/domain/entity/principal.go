package entity

import "time"

// Roles form a closed enumeration; there is no third value.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Principal is an authenticated actor with a unique handle and a role.
// Secrets are stored as bcrypt hashes in SecretHash. Principals are created
// by seeding/registration and are read-only to the service.
type Principal struct {
	ID         int64
	Handle     string
	SecretHash string
	Role       string
	CreatedAt  time.Time
}
