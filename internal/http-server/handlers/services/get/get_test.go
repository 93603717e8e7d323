package get

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"salon-booking/api"
)

type staticLister []api.ServiceResponse

func (s staticLister) Services() []api.ServiceResponse { return s }

func TestGet(t *testing.T) {
	rec := httptest.NewRecorder()
	lister := staticLister{{Key: "corte", Name: "Corte de Cabelo", Duration: 45}}

	New(slog.New(slog.NewTextHandler(io.Discard, nil)), lister).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/servicos", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"services":[{"key":"corte","name":"Corte de Cabelo","duration":45}]}`, rec.Body.String())
}
