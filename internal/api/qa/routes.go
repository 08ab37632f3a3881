package qa

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers stateless question-answering routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/qa", func(r chi.Router) {
		r.Post("/ask", h.Ask)
		r.Post("/highlight", h.Highlight)
		r.Post("/export", h.Export)
	})
}
