package domain

// ClientContact is a person with a client role, extended with company
// billing attributes.
type ClientContact struct {
	Person
	CompanyName string
	VATNumber   string
}
