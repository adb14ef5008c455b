package domain

import "time"

// AgentStatus enumerates lifecycle states for agents.
type AgentStatus string

const (
	AgentStatusActive    AgentStatus = "ACTIVE"
	AgentStatusSuspended AgentStatus = "SUSPENDED"
	AgentStatusInactive  AgentStatus = "INACTIVE"
)

// Agent is the aggregate for a sales agent. It spans a person row plus an
// agent-role row in storage; the two are always written together.
type Agent struct {
	Person
	Code       string
	Region     string
	Status     AgentStatus
	LastUpdate time.Time
}

// AgentInput carries the caller-supplied fields for creating or replacing
// an agent. Identity is never taken from the input.
type AgentInput struct {
	Code   string
	Name   string
	Email  string
	Phone  string
	Region string
	Status AgentStatus
}

// NewAgent builds an Agent from an input, stamping the last-update
// timestamp. The storage layer assigns the identity on save.
func NewAgent(input AgentInput) *Agent {
	return &Agent{
		Person: Person{
			Name:  input.Name,
			Email: input.Email,
			Phone: input.Phone,
		},
		Code:       input.Code,
		Region:     input.Region,
		Status:     input.Status,
		LastUpdate: time.Now(),
	}
}

// ApplyInput overlays the mutable fields of an input onto an existing
// agent, leaving the identity untouched.
func (a *Agent) ApplyInput(input AgentInput) {
	a.Code = input.Code
	a.Name = input.Name
	a.Email = input.Email
	a.Phone = input.Phone
	a.Region = input.Region
	a.Status = input.Status
}
