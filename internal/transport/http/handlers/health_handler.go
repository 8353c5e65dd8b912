package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/unais-08/blogs-fullstack/internal/logging"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/response"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

type HealthHandler struct {
	db  Pinger
	log *zap.Logger
}

func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    response.StatusSuccess,
		Message:   "Server is running",
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Database:  "up",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			logging.FromContext(r.Context(), h.log).Warn("health check: database unreachable", zap.Error(err))
			resp.Database = "down"
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

// NotFound answers any route the mux does not know.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.Fail(w, http.StatusNotFound, fmt.Sprintf("Route %s %s not found", r.Method, r.URL.RequestURI()))
}
