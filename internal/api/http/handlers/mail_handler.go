package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-management/internal/api/dto"
	"github.com/spec-kit/agent-management/internal/service"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

// MailHandler accepts outbound email requests.
type MailHandler struct {
	service *service.MailService
}

func NewMailHandler(mailService *service.MailService) *MailHandler {
	return &MailHandler{service: mailService}
}

// Send POST /communications/email. The send is queued and the request
// is acknowledged with 202; validation failures still surface
// synchronously because the handler waits for the result.
func (h *MailHandler) Send(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if _, err := h.service.SendEmail(c.UserContext(), req.Domain()).Wait(c.UserContext()); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}
