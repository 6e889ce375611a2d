// Package handler implements the HTTP handlers of the check-in list exporter.
// All handlers are methods on Server. Methods are split into files per
// resource (health.go, export.go, form.go) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netways/checkinlist-export/internal/domain"
)

// ExportServicer defines the export operation the handler depends on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type ExportServicer interface {
	Export(ctx context.Context, eventSlug string, opts domain.ExportOptions) (domain.ExportFile, error)
}

// FormServicer defines the configuration form operation the handler depends on.
type FormServicer interface {
	Form(ctx context.Context, eventSlug string) (domain.ExportForm, error)
}

// Server holds the dependencies of every endpoint.
type Server struct {
	export ExportServicer
	form   FormServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(export ExportServicer, form FormServicer) *Server {
	return &Server{export: export, form: form}
}

// NewRouter registers every route of s on a new chi router.
// exportMiddleware wraps only the export download route, which is the one
// expensive endpoint (e.g. a rate limiter).
func NewRouter(s *Server, exportMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Route("/events/{event}/exports/checkinlist", func(r chi.Router) {
		r.Get("/form", s.GetExportForm)
		r.With(exportMiddleware...).Get("/", s.ExportCheckinList)
	})
	return r
}
