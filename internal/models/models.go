package models

import "time"

type BookingStatus string

const (
	BookingPending  BookingStatus = "PENDENTE"
	BookingApproved BookingStatus = "APROVADO"
)

type Booking struct {
	ID             int64         `db:"id"`
	ClientName     string        `db:"cliente_nome"`
	ClientWhatsapp string        `db:"cliente_whatsapp"`
	ServiceName    string        `db:"servico_nome"`
	Date           time.Time     `db:"data_agendamento"`
	StartTime      string        `db:"hora_inicio"`
	EndTime        string        `db:"hora_fim"`
	Status         BookingStatus `db:"status"`
	CreatedAt      time.Time     `db:"created_at"`
}
