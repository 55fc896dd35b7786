package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	Role         string
	Provider     string
	CreatedAt    string
	UpdatedAt    string
}

// User is the schema definition for users
var User = UserTable{
	Table:        "users",
	ID:           "id",
	Email:        "email",
	PasswordHash: "password_hash",
	Role:         "role",
	Provider:     "provider",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

func (t UserTable) Columns() []string {
	return []string{t.ID, t.Email, t.PasswordHash, t.Role, t.Provider, t.CreatedAt, t.UpdatedAt}
}
