package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	BaseNoDelete
	Email        string   `db:"email"`
	Name         string   `db:"name"`
	Phone        *string  `db:"phone"`
	PasswordHash *string  `db:"password_hash"`
	Role         UserRole `db:"role"`
}

// HasPassword reports whether the account finished the password-setup flow.
// Auto-provisioned checkout accounts start with a NULL hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
