package approve

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salon-booking/api"
	"salon-booking/internal/slots"
	"salon-booking/pkg/response"
	"salon-booking/pkg/sl"
)

type BookingApprover interface {
	ApproveBooking(ctx context.Context, id int64) (*api.BookingResponse, error)
}

var page = template.Must(template.New("approved").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Agendamento Aprovado</title>
<style>
body { background-color: #F7ECE0; font-family: sans-serif; text-align: center; padding-top: 50px; }
.container { max-width: 400px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 4px 15px rgba(0, 0, 0, 0.1); }
h1 { color: #28A745; }
</style>
</head>
<body>
<div class="container">
<h1>✅ Agendamento ID {{.ID}} Aprovado com Sucesso!</h1>
<p>{{.ServicoNome}} em {{.Data}} às {{.Hora}} ({{.ClienteNome}})</p>
<p>Este horário agora está <strong>BLOQUEADO</strong> no site para novos clientes.</p>
</div>
</body>
</html>
`))

type pageData struct {
	ID          int64
	ClienteNome string
	ServicoNome string
	Data        string
	Hora        string
}

// New approves a pending booking. The owner opens this link from WhatsApp,
// so success is rendered as an HTML page.
func New(log *slog.Logger, approver BookingApprover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.approve.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			log.Error("invalid booking id", slog.String("id", chi.URLParam(r, "id")))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_REQUEST), "invalid booking id"))
			return
		}

		booking, err := approver.ApproveBooking(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("booking not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking not found"))
			return
		}

		if errors.Is(err, response.ErrInvalidID) {
			log.Error("invalid booking id", slog.Int64("id", id))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_REQUEST), "invalid booking id"))
			return
		}

		if err != nil {
			log.Error("Failed to approve booking", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to approve booking"))
			return
		}

		var buf bytes.Buffer
		if err := page.Execute(&buf, pageData{
			ID:          booking.ID,
			ClienteNome: booking.ClienteNome,
			ServicoNome: booking.ServicoNome,
			Data:        slots.DisplayDate(booking.Data),
			Hora:        trimSeconds(booking.HoraInicio),
		}); err != nil {
			log.Error("Failed to render approval page", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to render page"))
			return
		}

		log.Info("Booking approved", slog.Int64("id", booking.ID))

		render.HTML(w, r, buf.String())
	}
}

func trimSeconds(t string) string {
	if len(t) > len("15:04") {
		return t[:len("15:04")]
	}
	return t
}
