// Package stub implements a local endpoint that speaks the same wire
// contract as a provisioned cloud endpoint, so check, monitor, loadtest
// and serve can be exercised without any infrastructure.
package stub

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
)

// Handler serves the health path and the root page of one stub endpoint.
type Handler struct {
	name   string
	logger *slog.Logger
}

func NewHandler(name string, logger *slog.Logger) *Handler {
	return &Handler{name: name, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("stub request",
		slog.String("path", r.URL.Path),
		slog.String("from", r.RemoteAddr))

	switch r.URL.Path {
	case endpoint.DefaultHealthPath:
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	case endpoint.DefaultRootPath:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<html><body><h1>%s</h1><p>stub endpoint</p></body></html>\n", h.name)
	default:
		http.NotFound(w, r)
	}
}
