package models

// User represents a resource exposed by the user API.
// It maps to the `users` table in SQLite when the sqlite backend is used.
type User struct {
	ID       uint64 `db:"id" json:"id"`
	UserName string `db:"user_name" json:"userName"`
	Role     string `db:"role" json:"role"`
	Active   bool   `db:"active" json:"active"`
}

// Link is a named pointer from a user representation to a related endpoint.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// UserWithLinks pairs one user with its hypermedia links.
type UserWithLinks struct {
	User  User   `json:"user"`
	Links []Link `json:"links"`
}
