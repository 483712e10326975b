package models

// Role gates administrative operations.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is an operator of the system as yielded by the identity provider.
type User struct {
	ID           string `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name" validate:"required"`
	Username     string `bson:"username" json:"username" validate:"required"`
	Role         Role   `bson:"role" json:"role" validate:"required,oneof=ADMIN STAFF"`
	PasswordHash string `bson:"password_hash" json:"-"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate checks field-level constraints.
func (u User) Validate() error {
	return validate.Struct(u)
}
