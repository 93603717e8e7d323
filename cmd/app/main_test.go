package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"salon-booking/api"
)

type stubAPI struct{}

func (stubAPI) ListUnavailable(ctx context.Context) ([]api.UnavailableTime, error) {
	return []api.UnavailableTime{}, nil
}

func (stubAPI) Availability(ctx context.Context, serviceKey, date string) (*api.SlotsResponse, error) {
	return &api.SlotsResponse{Servico: serviceKey, Data: date, Slots: []api.SlotResponse{}}, nil
}

func (stubAPI) Services() []api.ServiceResponse {
	return []api.ServiceResponse{{Key: "corte", Name: "Corte de Cabelo", Duration: 45}}
}

func (stubAPI) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingCreated, error) {
	return &api.BookingCreated{ID: 1, Status: "PENDENTE"}, nil
}

func (stubAPI) GetBooking(ctx context.Context, id int64) (*api.BookingResponse, error) {
	return &api.BookingResponse{ID: id, Status: "PENDENTE"}, nil
}

func (stubAPI) ListBookings(ctx context.Context, status, date string) ([]api.BookingResponse, error) {
	return []api.BookingResponse{}, nil
}

func (stubAPI) ApproveBooking(ctx context.Context, id int64) (*api.BookingResponse, error) {
	return &api.BookingResponse{ID: id, Data: "2026-10-20", HoraInicio: "10:00:00", Status: "APROVADO"}, nil
}

func TestRouter(t *testing.T) {
	router := newRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), stubAPI{}, "Kamila Lima")

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{name: "banner", method: http.MethodGet, path: "/", wantCode: http.StatusOK},
		{name: "feed", method: http.MethodGet, path: "/api/horarios-indisponiveis", wantCode: http.StatusOK},
		{name: "slots", method: http.MethodGet, path: "/api/horarios?servico=corte&data=2026-10-20", wantCode: http.StatusOK},
		{name: "services", method: http.MethodGet, path: "/api/servicos", wantCode: http.StatusOK},
		{name: "booking", method: http.MethodGet, path: "/api/agendamentos/3", wantCode: http.StatusOK},
		{name: "approve", method: http.MethodGet, path: "/api/agendamentos/3/aprovar", wantCode: http.StatusOK},
		{name: "extension in id", method: http.MethodGet, path: "/api/agendamentos/1.json", wantCode: http.StatusBadRequest},
		{name: "preflight", method: http.MethodOptions, path: "/api/agendamentos", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
