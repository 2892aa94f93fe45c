package health

import (
	"clinic/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler answers liveness checks. It stays public so load balancers can reach it.
type Handler struct{}

func New() Handler {
	return Handler{}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health reports that the process is serving requests.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Router /v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WithMessage(w, http.StatusOK, "ok")
}
