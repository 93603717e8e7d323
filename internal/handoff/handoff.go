// Package handoff composes the WhatsApp message that tells the salon owner a
// new booking request is waiting for approval.
package handoff

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"salon-booking/internal/slots"
)

const whatsappSendURL = "https://api.whatsapp.com/send"

var ErrNoOwnerPhone = errors.New("owner phone is not configured")

type Config struct {
	SalonName       string
	OwnerPhone      string
	ApprovalBaseURL string
}

// Request carries what the owner needs to approve one pending booking.
type Request struct {
	BookingID      int64
	ServiceName    string
	Date           string
	Time           string
	ClientName     string
	ClientWhatsapp string
}

type Composer struct {
	cfg Config
}

func New(cfg Config) *Composer {
	if cfg.SalonName == "" {
		cfg.SalonName = "Kamila Lima"
	}
	return &Composer{cfg: cfg}
}

func (c *Composer) ApprovalLink(bookingID int64) string {
	return fmt.Sprintf("%s/api/agendamentos/%d/aprovar", strings.TrimRight(c.cfg.ApprovalBaseURL, "/"), bookingID)
}

func (c *Composer) Message(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Olá %s! NOVO AGENDAMENTO PENDENTE (ID: %d). Por favor, APROVE para bloquear o horário:\n\n", c.cfg.SalonName, req.BookingID)
	fmt.Fprintf(&b, "💅 Serviço: *%s*\n", req.ServiceName)
	fmt.Fprintf(&b, "🗓 Data: *%s*\n", slots.DisplayDate(req.Date))
	fmt.Fprintf(&b, "⏰ Horário: *%s*\n", req.Time)
	fmt.Fprintf(&b, "👤 Cliente: *%s* (%s)\n\n", req.ClientName, valueOrNA(req.ClientWhatsapp))
	fmt.Fprintf(&b, "👉 CLIQUE PARA APROVAR ESTE AGENDAMENTO: %s", c.ApprovalLink(req.BookingID))

	return b.String()
}

// Link returns the deep link that opens WhatsApp with the message pre-filled.
func (c *Composer) Link(req Request) (string, error) {
	if c.cfg.OwnerPhone == "" {
		return "", fmt.Errorf("handoff.Composer.Link: %w", ErrNoOwnerPhone)
	}

	q := url.Values{}
	q.Set("phone", c.cfg.OwnerPhone)
	q.Set("text", c.Message(req))

	return whatsappSendURL + "?" + q.Encode(), nil
}

func valueOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "não informado"
	}
	return s
}
