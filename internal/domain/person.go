package domain

// Person carries the attributes shared by every person-like record.
// Role-specific aggregates embed it by value; the identity is the id of
// the underlying person row.
type Person struct {
	ID    int64
	Name  string
	Email string
	Phone string
}
