// Copyright (c) 2026 Kritika. All rights reserved.

package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
	IsStaff   string
	CreatedAt string
	UpdatedAt string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:     "users.account",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	FirstName: "firstname",
	LastName:  "lastname",
	Bio:       "bio",
	Role:      "role",
	IsStaff:   "isstaff",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Bio, t.Role, t.IsStaff, t.CreatedAt, t.UpdatedAt}
}
