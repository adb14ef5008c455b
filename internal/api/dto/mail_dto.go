package dto

import "github.com/spec-kit/agent-management/internal/domain"

// EmailRequest payload for outbound client email.
type EmailRequest struct {
	EmployeeID *int64 `json:"employee_id" validate:"required"`
	ClientID   *int64 `json:"client_id" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	Body       string `json:"body" validate:"required"`
}

// Domain converts the request into the domain shape.
func (r EmailRequest) Domain() domain.EmailRequest {
	return domain.EmailRequest{
		EmployeeID: r.EmployeeID,
		ClientID:   r.ClientID,
		Subject:    r.Subject,
		Body:       r.Body,
	}
}
