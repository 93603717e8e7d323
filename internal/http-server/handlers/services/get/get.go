package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"salon-booking/api"
)

type ServiceLister interface {
	Services() []api.ServiceResponse
}

type Response struct {
	Services []api.ServiceResponse `json:"services"`
}

func New(log *slog.Logger, lister ServiceLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.services.get.New"

		log.Debug("Listing services",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		render.JSON(w, r, Response{Services: lister.Services()})
	}
}
