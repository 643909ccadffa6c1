package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "draftpulse/internal/errors"
)

// OperationsHandler exposes pipeline run control and status.
type OperationsHandler struct {
	service      OperationsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewOperationsHandler creates an operations handler.
func NewOperationsHandler(service OperationsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *OperationsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OperationsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "operations_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the operations routes.
func (h *OperationsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.StartRun)
	r.Get("/", h.ListRuns)
	r.Get("/{runID}", h.GetRun)

	return r
}

// StartRun handles POST /. The run proceeds in the background; progress is
// streamed over the websocket.
func (h *OperationsHandler) StartRun(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Start(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "pipeline run accepted")
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]string{"status": "started"})
}

// ListRuns handles GET /.
func (h *OperationsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"running": h.service.IsRunning(),
		"runs":    h.service.List(),
	})
}

// GetRun handles GET /{runID}.
func (h *OperationsHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Get(chi.URLParam(r, "runID"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}
