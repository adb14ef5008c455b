package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-management/internal/api/dto"
	"github.com/spec-kit/agent-management/internal/service"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

// CollaborationHandler exposes team, directory and chat endpoints.
type CollaborationHandler struct {
	service *service.CollaborationService
}

func NewCollaborationHandler(collabService *service.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{service: collabService}
}

// ListTeams GET /teams.
func (h *CollaborationHandler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.service.ListTeams(c.UserContext()).Wait(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, dto.NewTeamResponse(teams[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListEmployees GET /employees.
func (h *CollaborationHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.service.ListEmployees(c.UserContext()).Wait(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, dto.NewEmployeeResponse(employees[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListClients GET /clients.
func (h *CollaborationHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.service.ListClients(c.UserContext()).Wait(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, dto.NewClientResponse(clients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListMessages GET /teams/:id/messages.
func (h *CollaborationHandler) ListMessages(c *fiber.Ctx) error {
	teamID, err := parseTeamID(c)
	if err != nil {
		return err
	}
	messages, err := h.service.ListMessages(c.UserContext(), teamID).Wait(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewChatMessageResponse(messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SendMessage POST /teams/:id/messages.
func (h *CollaborationHandler) SendMessage(c *fiber.Ctx) error {
	teamID, err := parseTeamID(c)
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	msg, err := h.service.SendMessage(c.UserContext(), teamID, req.SenderID, req.Message).Wait(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewChatMessageResponse(*msg)})
}

func parseTeamID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid team id", nil)
	}
	return id, nil
}
