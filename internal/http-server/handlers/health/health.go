package health

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// New serves the plain text banner used to check the API is up.
func New(salonName string) http.HandlerFunc {
	banner := fmt.Sprintf("API do Agendamento %s está funcionando!", salonName)

	return func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, banner)
	}
}
