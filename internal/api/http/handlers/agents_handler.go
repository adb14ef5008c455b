package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-management/internal/api/dto"
	"github.com/spec-kit/agent-management/internal/service"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

// AgentsHandler exposes agent CRUD endpoints.
type AgentsHandler struct {
	service *service.AgentService
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(agentService *service.AgentService) *AgentsHandler {
	return &AgentsHandler{service: agentService}
}

// List GET /agents.
func (h *AgentsHandler) List(c *fiber.Ctx) error {
	agents, err := h.service.ListAll(c.UserContext()).Wait(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AgentResponse, 0, len(agents))
	for i := range agents {
		items = append(items, dto.NewAgentResponse(&agents[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /agents/:id.
func (h *AgentsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	agent, err := h.service.GetByID(c.UserContext(), id).Wait(c.UserContext())
	if err != nil {
		return err
	}
	if agent == nil {
		return apperrors.NewNotFound("agent", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewAgentResponse(agent)})
}

// Create POST /agents.
func (h *AgentsHandler) Create(c *fiber.Ctx) error {
	var req dto.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	agent, err := h.service.Create(c.UserContext(), req.Input()).Wait(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAgentResponse(agent)})
}

// Update PUT /agents/:id.
func (h *AgentsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	agent, err := h.service.Update(c.UserContext(), id, req.Input()).Wait(c.UserContext())
	if err != nil {
		return err
	}
	if agent == nil {
		return apperrors.NewNotFound("agent", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewAgentResponse(agent)})
}

// Delete DELETE /agents/:id.
func (h *AgentsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	deleted, err := h.service.Delete(c.UserContext(), id).Wait(c.UserContext())
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("agent", map[string]any{"id": id})
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}
