package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registration-service/internal/api/dto"
	"github.com/spec-kit/registration-service/internal/domain"
	"github.com/spec-kit/registration-service/internal/flow"
	"github.com/spec-kit/registration-service/internal/observability"
	"github.com/spec-kit/registration-service/internal/service"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

// RegistrationsHandler manages the public registration endpoints.
type RegistrationsHandler struct {
	service  *service.RegistrationService
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewRegistrationsHandler constructs handler.
func NewRegistrationsHandler(registrationService *service.RegistrationService, metrics *observability.Metrics) *RegistrationsHandler {
	return &RegistrationsHandler{
		service:  registrationService,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// Register POST /registrations.
func (h *RegistrationsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	input := service.RegisterInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Church:         req.Church,
		Zone:           req.Zone,
		TicketType:     domain.TicketType(req.TicketType),
		GuestName:      req.GuestName,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		StaffPIN:       req.StaffPIN,
		TransactionRef: req.TransactionRef,
		ReceiptImage:   req.ReceiptImage,
	}
	record, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		return err
	}
	h.metrics.RecordOperation(observability.OpRegistrationCreated)

	trigger := flow.TriggerSubmitTransfer
	if record.PaymentMethod == domain.PaymentMethodCash {
		trigger = flow.TriggerSubmitCash
	}
	state, _ := flow.Next(flow.StateRegistering, trigger)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":  registrationResponse(record),
		"state": state,
	})
}

// Get GET /registrations/:id.
func (h *RegistrationsHandler) Get(c *fiber.Ctx) error {
	record, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": registrationResponse(record)})
}
