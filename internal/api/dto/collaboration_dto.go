package dto

import (
	"time"

	"github.com/spec-kit/agent-management/internal/domain"
)

// EmployeeResponse response.
type EmployeeResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	JobTitle string `json:"job_title"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(employee domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       employee.ID,
		Name:     employee.Name,
		Email:    employee.Email,
		Phone:    employee.Phone,
		JobTitle: employee.JobTitle,
	}
}

// ClientResponse response.
type ClientResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	VATNumber   string `json:"vat_number"`
}

// NewClientResponse maps a domain client contact.
func NewClientResponse(client domain.ClientContact) ClientResponse {
	return ClientResponse{
		ID:          client.ID,
		Name:        client.Name,
		Email:       client.Email,
		Phone:       client.Phone,
		CompanyName: client.CompanyName,
		VATNumber:   client.VATNumber,
	}
}

// TeamResponse response, members in storage order.
type TeamResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Members     []EmployeeResponse `json:"members"`
}

// NewTeamResponse maps a domain team.
func NewTeamResponse(team domain.Team) TeamResponse {
	members := make([]EmployeeResponse, 0, len(team.Members))
	for _, member := range team.Members {
		members = append(members, NewEmployeeResponse(member))
	}
	return TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		Members:     members,
	}
}

// ChatMessageResponse response.
type ChatMessageResponse struct {
	ID         int64     `json:"id"`
	TeamID     int64     `json:"team_id"`
	SenderID   int64     `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sent_at"`
}

// NewChatMessageResponse maps a domain chat message.
func NewChatMessageResponse(msg domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:         msg.ID,
		TeamID:     msg.TeamID,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		Message:    msg.Body,
		SentAt:     msg.SentAt,
	}
}

// SendMessageRequest payload.
type SendMessageRequest struct {
	SenderID int64  `json:"sender_id" validate:"required"`
	Message  string `json:"message" validate:"required"`
}
