package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"salon-booking/api"
	"salon-booking/pkg/response"
	"salon-booking/pkg/sl"
)

type UnavailableLister interface {
	ListUnavailable(ctx context.Context) ([]api.UnavailableTime, error)
}

// New serves the approved bookings as a bare JSON array, the shape the booking
// widget reads.
func New(log *slog.Logger, lister UnavailableLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.unavailable.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		feed, err := lister.ListUnavailable(r.Context())
		if err != nil {
			log.Error("Failed to list unavailable times", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list unavailable times"))
			return
		}

		if feed == nil {
			feed = []api.UnavailableTime{}
		}

		log.Debug("Unavailable times listed", slog.Int("count", len(feed)))

		render.JSON(w, r, feed)
	}
}
