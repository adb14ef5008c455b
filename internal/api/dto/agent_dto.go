package dto

import (
	"time"

	"github.com/spec-kit/agent-management/internal/domain"
)

// AgentRequest payload for create and update.
type AgentRequest struct {
	Code   string `json:"code" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone"`
	Region string `json:"region" validate:"required"`
	Status string `json:"status" validate:"required,oneof=ACTIVE SUSPENDED INACTIVE"`
}

// Input converts the request into the domain input shape.
func (r AgentRequest) Input() domain.AgentInput {
	return domain.AgentInput{
		Code:   r.Code,
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Region: r.Region,
		Status: domain.AgentStatus(r.Status),
	}
}

// AgentResponse response.
type AgentResponse struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Region     string    `json:"region"`
	Status     string    `json:"status"`
	LastUpdate time.Time `json:"last_update"`
}

// NewAgentResponse maps a domain agent.
func NewAgentResponse(agent *domain.Agent) AgentResponse {
	return AgentResponse{
		ID:         agent.ID,
		Code:       agent.Code,
		Name:       agent.Name,
		Email:      agent.Email,
		Phone:      agent.Phone,
		Region:     agent.Region,
		Status:     string(agent.Status),
		LastUpdate: agent.LastUpdate,
	}
}
