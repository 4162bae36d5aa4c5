// Package ticket produces the scannable e-ticket artifact.
package ticket

import (
	"encoding/base64"
	"encoding/json"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/spec-kit/registration-service/internal/domain"
)

// Payload is the data encoded into the e-ticket code. The door scanner only
// needs enough to greet the attendee and resolve the record.
type Payload struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	TicketType domain.TicketType `json:"ticketType"`
	GuestName  string            `json:"guestName,omitempty"`
}

// Renderer turns a payload into a displayable artifact reference.
type Renderer interface {
	Render(p Payload) (string, error)
}

// QRRenderer renders the payload as a PNG QR code data URI.
type QRRenderer struct {
	size int
}

// NewQRRenderer builds a renderer; size is the PNG edge in pixels.
func NewQRRenderer(size int) *QRRenderer {
	if size <= 0 {
		size = 256
	}
	return &QRRenderer{size: size}
}

func (r *QRRenderer) Render(p Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	png, err := qrcode.Encode(string(raw), qrcode.Medium, r.size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
