package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/registration-service/internal/api/dto"
	"github.com/spec-kit/registration-service/internal/domain"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

// validateStruct runs validator tags and reports the first unmet requirement
// as a user-facing ValidationError.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		field := strings.ToLower(first.Field())
		return apperrors.NewValidationError(
			fmt.Sprintf("%s failed %s validation", field, first.Tag()),
			map[string]any{"field": field},
		)
	}
	return apperrors.NewValidationError("invalid payload", nil)
}

func registrationResponse(r *domain.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:             r.ID,
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		Church:         r.Church,
		Zone:           r.Zone,
		TicketType:     r.TicketType,
		GuestName:      r.GuestName,
		TotalDue:       r.TotalDue,
		TotalPaid:      r.TotalPaid,
		Balance:        r.Balance,
		PaymentMethod:  r.PaymentMethod,
		Status:         r.Status,
		TransactionRef: r.TransactionRef,
		TicketQR:       r.TicketQR,
		EmailSent:      r.EmailSent,
		CheckedIn:      r.CheckedIn,
		CreatedAt:      r.CreatedAt,
	}
}
