package domain

// EmailRequest is the transient input for an outbound client email. The
// identifiers are pointers so a missing reference is distinguishable
// from id zero.
type EmailRequest struct {
	EmployeeID *int64
	ClientID   *int64
	Subject    string
	Body       string
}
