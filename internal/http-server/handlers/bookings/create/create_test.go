package create

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-booking/api"
	"salon-booking/pkg/response"
)

type fakeCreator struct {
	got *api.BookingRequest
	err error
}

func (f *fakeCreator) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingCreated, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &api.BookingCreated{
		Mensagem:     "Agendamento solicitado com sucesso. Aguardando aprovação.",
		ID:           5,
		Status:       "PENDENTE",
		WhatsappLink: "https://api.whatsapp.com/send?phone=1",
	}, nil
}

const body = `{"cliente_nome":"Maria","cliente_whatsapp":"82999990000","servico_nome":"Corte de Cabelo",
"data_agendamento":"2026-10-20","hora_inicio":"10:00","hora_fim":"10:45"}`

func TestCreate(t *testing.T) {
	creator := &fakeCreator{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/agendamentos", strings.NewReader(body))

	New(slog.New(slog.NewTextHandler(io.Discard, nil)), creator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"mensagem":"Agendamento solicitado com sucesso. Aguardando aprovação.","id":5,
		"status":"PENDENTE","whatsapp_link":"https://api.whatsapp.com/send?phone=1"}`, rec.Body.String())
	require.NotNil(t, creator.got)
	assert.Equal(t, "Corte de Cabelo", creator.got.ServicoNome)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{name: "malformed json", body: `{"cliente_nome":`, wantCode: http.StatusBadRequest},
		{name: "incomplete", body: `{"cliente_nome":"Maria"}`, err: fmt.Errorf("wrap: %w", response.ErrBadRequest), wantCode: http.StatusBadRequest},
		{name: "storage", body: body, err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/agendamentos", strings.NewReader(tt.body))

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), &fakeCreator{err: tt.err}).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
