package api

// UnavailableTime is one approved booking as published to the booking widget.
// Times keep the database TIME form (HH:MM:SS); consumers read the first five
// characters.
type UnavailableTime struct {
	Data       string `json:"data"`
	HoraInicio string `json:"hora_inicio"`
	HoraFim    string `json:"hora_fim"`
}

type BookingRequest struct {
	ClienteNome     string `json:"cliente_nome"`
	ClienteWhatsapp string `json:"cliente_whatsapp"`
	ServicoNome     string `json:"servico_nome"`
	DataAgendamento string `json:"data_agendamento"`
	HoraInicio      string `json:"hora_inicio"`
	HoraFim         string `json:"hora_fim"`
}

type BookingCreated struct {
	Mensagem     string `json:"mensagem"`
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	WhatsappLink string `json:"whatsapp_link,omitempty"`
}

type BookingResponse struct {
	ID          int64  `json:"id"`
	ClienteNome string `json:"cliente_nome"`
	ServicoNome string `json:"servico_nome"`
	Data        string `json:"data_agendamento"`
	HoraInicio  string `json:"hora_inicio"`
	HoraFim     string `json:"hora_fim"`
	Status      string `json:"status"`
}

type ServiceResponse struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

type SlotResponse struct {
	Hora       string `json:"hora"`
	Status     string `json:"status"`
	Disponivel bool   `json:"disponivel"`
}

type SlotsResponse struct {
	Servico  string         `json:"servico"`
	Data     string         `json:"data"`
	HasSlots bool           `json:"has_slots"`
	Degraded bool           `json:"degraded,omitempty"`
	Slots    []SlotResponse `json:"slots"`
}
