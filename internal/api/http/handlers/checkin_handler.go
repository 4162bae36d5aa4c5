package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registration-service/internal/api/dto"
	"github.com/spec-kit/registration-service/internal/flow"
	"github.com/spec-kit/registration-service/internal/observability"
	"github.com/spec-kit/registration-service/internal/service"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

// CheckinHandler serves the door scanner. The "scanner" is manual entry:
// staff type the ticket identifier printed on the e-ticket.
type CheckinHandler struct {
	service  *service.CheckinService
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewCheckinHandler constructs handler.
func NewCheckinHandler(checkinService *service.CheckinService, metrics *observability.Metrics) *CheckinHandler {
	return &CheckinHandler{
		service:  checkinService,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// CheckIn POST /admin/checkin.
func (h *CheckinHandler) CheckIn(c *fiber.Ctx) error {
	var req dto.CheckinRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	result, err := h.service.CheckIn(c.UserContext(), req.TicketID)
	if err != nil {
		return err
	}
	if !result.AlreadyCheckedIn {
		h.metrics.RecordOperation(observability.OpCheckIn)
	}

	return c.JSON(fiber.Map{
		"data": dto.CheckinResponse{
			Registration:     registrationResponse(&result.Registration),
			AlreadyCheckedIn: result.AlreadyCheckedIn,
		},
		"state": flow.StateScanning,
	})
}
