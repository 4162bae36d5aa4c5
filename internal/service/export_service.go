package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/spec-kit/registration-service/internal/domain"
	"github.com/spec-kit/registration-service/internal/repository"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

// ExportService dumps the ledger as a delimited table, one row per
// registration, columns configurable but fixed in order for a given run.
type ExportService struct {
	store   repository.RegistrationStore
	columns []string
}

var columnRenderers = map[string]func(domain.Registration) string{
	"id":             func(r domain.Registration) string { return r.ID },
	"name":           func(r domain.Registration) string { return r.Name },
	"phone":          func(r domain.Registration) string { return r.Phone },
	"email":          func(r domain.Registration) string { return r.Email },
	"church":         func(r domain.Registration) string { return r.Church },
	"zone":           func(r domain.Registration) string { return r.Zone },
	"ticketType":     func(r domain.Registration) string { return string(r.TicketType) },
	"guestName":      func(r domain.Registration) string { return r.GuestName },
	"paymentMethod":  func(r domain.Registration) string { return string(r.PaymentMethod) },
	"totalDue":       func(r domain.Registration) string { return strconv.FormatInt(r.TotalDue, 10) },
	"totalPaid":      func(r domain.Registration) string { return strconv.FormatInt(r.TotalPaid, 10) },
	"balance":        func(r domain.Registration) string { return strconv.FormatInt(r.Balance, 10) },
	"status":         func(r domain.Registration) string { return string(r.Status) },
	"transactionRef": func(r domain.Registration) string { return r.TransactionRef },
	"emailSent":      func(r domain.Registration) string { return strconv.FormatBool(r.EmailSent) },
	"checkedIn":      func(r domain.Registration) string { return strconv.FormatBool(r.CheckedIn) },
	"createdAt":      func(r domain.Registration) string { return r.CreatedAt.Format(time.RFC3339) },
}

// NewExportService constructs the service, dropping unknown column names.
func NewExportService(store repository.RegistrationStore, columns []string) *ExportService {
	effective := make([]string, 0, len(columns))
	for _, col := range columns {
		if _, ok := columnRenderers[col]; ok {
			effective = append(effective, col)
		}
	}
	return &ExportService{store: store, columns: effective}
}

// Columns returns the effective column list, in output order.
func (s *ExportService) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// WriteCSV writes the header row and one row per registration.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(s.columns); err != nil {
		return apperrors.NewInternalError(err)
	}
	for _, rec := range s.store.Load(ctx) {
		row := make([]string, len(s.columns))
		for i, col := range s.columns {
			row[i] = columnRenderers[col](rec)
		}
		if err := writer.Write(row); err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
