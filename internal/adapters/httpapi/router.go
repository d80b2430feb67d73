package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
)

// NewRouter constructs the read-only cassette inspector.
//
// This is intentionally a thin adapter: it lists cassettes and renders their
// tracks as JSON; all persistence semantics stay behind the store port.
func NewRouter(store cassettestore.Store) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health endpoint for infra checks.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	h := &handlers{store: store}
	r.Get("/cassettes", h.listCassettes)
	r.Get("/cassettes/{name}", h.getCassette)
	return r
}
