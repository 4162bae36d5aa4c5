package handlers

import (
	"bytes"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registration-service/internal/api/dto"
	"github.com/spec-kit/registration-service/internal/auth"
	"github.com/spec-kit/registration-service/internal/flow"
	"github.com/spec-kit/registration-service/internal/observability"
	"github.com/spec-kit/registration-service/internal/service"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

// AdminHandler serves the admin dashboard: login, payment review, ledger
// export.
type AdminHandler struct {
	registrations *service.RegistrationService
	ledger        *service.LedgerService
	export        *service.ExportService
	tokens        *auth.TokenManager
	adminPassword auth.CredentialVerifier
	metrics       *observability.Metrics
	validate      *validator.Validate
}

// AdminDependencies bundles collaborators for the handler.
type AdminDependencies struct {
	Registrations *service.RegistrationService
	Ledger        *service.LedgerService
	Export        *service.ExportService
	Tokens        *auth.TokenManager
	AdminPassword auth.CredentialVerifier
	Metrics       *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{
		registrations: deps.Registrations,
		ledger:        deps.Ledger,
		export:        deps.Export,
		tokens:        deps.Tokens,
		adminPassword: deps.AdminPassword,
		metrics:       deps.Metrics,
		validate:      validator.New(),
	}
}

// Login POST /auth/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	if !h.adminPassword.Verify(req.Password) {
		return apperrors.NewAuthorizationError("invalid admin password")
	}

	token, expiresAt, err := h.tokens.GenerateToken(auth.RoleAdmin)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	state, _ := flow.Next(flow.StateAdminLoginPending, flow.TriggerAdminLogin)
	return c.JSON(fiber.Map{
		"data":  dto.AdminLoginResponse{Token: token, ExpiresAt: expiresAt},
		"state": state,
	})
}

// List GET /admin/registrations.
func (h *AdminHandler) List(c *fiber.Ctx) error {
	records := h.registrations.List(c.UserContext())
	items := make([]dto.RegistrationResponse, 0, len(records))
	for i := range records {
		items = append(items, registrationResponse(&records[i]))
	}
	return c.JSON(fiber.Map{
		"data":       items,
		"summary":    h.registrations.Summarize(c.UserContext()),
		"operations": h.metrics.OperationCounts(),
	})
}

// Approve POST /admin/registrations/:id/approve.
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	record, err := h.ledger.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	h.metrics.RecordOperation(observability.OpPaymentApproved)
	state, _ := flow.Next(flow.StateAwaitingPayment, flow.TriggerPaymentApproved)
	return c.JSON(fiber.Map{
		"data":  registrationResponse(record),
		"state": state,
	})
}

// AddPayment POST /admin/registrations/:id/payments.
func (h *AdminHandler) AddPayment(c *fiber.Ctx) error {
	var req dto.PartialPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	record, err := h.ledger.AddPartialPayment(c.UserContext(), c.Params("id"), req.Amount)
	if err != nil {
		return err
	}
	h.metrics.RecordOperation(observability.OpPartialPayment)
	return c.JSON(fiber.Map{"data": registrationResponse(record)})
}

// IssueTicket POST /admin/registrations/:id/ticket.
func (h *AdminHandler) IssueTicket(c *fiber.Ctx) error {
	record, err := h.ledger.IssueETicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	h.metrics.RecordOperation(observability.OpETicketIssued)
	return c.JSON(fiber.Map{"data": registrationResponse(record)})
}

// Export GET /admin/registrations/export.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.export.WriteCSV(c.UserContext(), &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="registrations.csv"`)
	return c.Status(http.StatusOK).Send(buf.Bytes())
}
