package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "draftpulse/internal/errors"
	"draftpulse/internal/services"
)

// DataHandler serves the analytics API consumed by the dashboard.
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data API routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/players", h.GetPlayers)
	r.Route("/hit-rates", func(r chi.Router) {
		r.Get("/by-round", h.GetHitRatesByRound)
		r.Get("/by-position", h.GetHitRatesByPosition)
		r.Get("/by-pick", h.GetHitRatesByPick)
		r.Get("/heatmap", h.GetHeatmap)
		r.Get("/value-table", h.GetValueTable)
	})

	return r
}

// filterParams parses the shared query parameters. Unparseable numbers are
// reported as field validation errors; range checks live in the service.
func filterParams(r *http.Request) (services.FilterParams, error) {
	q := r.URL.Query()
	params := services.FilterParams{}

	intParam := func(name string) (int, error) {
		raw := q.Get(name)
		if raw == "" {
			return 0, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, apierrors.ErrValidation(name, "must be an integer")
		}
		return v, nil
	}

	var err error
	if params.YearMin, err = intParam("year_min"); err != nil {
		return params, err
	}
	if params.YearMax, err = intParam("year_max"); err != nil {
		return params, err
	}
	if params.MinPlayers, err = intParam("min_players"); err != nil {
		return params, err
	}

	if raw := q.Get("rounds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			round, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return params, apierrors.ErrValidation("rounds", "must be a comma-separated list of integers")
			}
			params.Rounds = append(params.Rounds, round)
		}
	}
	if raw := q.Get("positions"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if pos := strings.TrimSpace(part); pos != "" {
				params.Positions = append(params.Positions, pos)
			}
		}
	}
	return params, nil
}

func (h *DataHandler) respond(w http.ResponseWriter, r *http.Request, data interface{}, err error) {
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, data)
}

// GetSummary handles GET /summary.
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	params, err := filterParams(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	data, err := h.service.Summary(r.Context(), params)
	h.respond(w, r, data, err)
}

// GetPlayers handles GET /players.
func (h *DataHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	params, err := filterParams(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	data, err := h.service.Players(r.Context(), params)
	h.respond(w, r, data, err)
}

// GetHitRatesByRound handles GET /hit-rates/by-round.
func (h *DataHandler) GetHitRatesByRound(w http.ResponseWriter, r *http.Request) {
	params, err := filterParams(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	data, err := h.service.HitRatesByRound(r.Context(), params)
	h.respond(w, r, data, err)
}

// GetHitRatesByPosition handles GET /hit-rates/by-position.
func (h *DataHandler) GetHitRatesByPosition(w http.ResponseWriter, r *http.Request) {
	params, err := filterParams(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	data, err := h.service.HitRatesByPosition(r.Context(), params)
	h.respond(w, r, data, err)
}

// GetHitRatesByPick handles GET /hit-rates/by-pick.
func (h *DataHandler) GetHitRatesByPick(w http.ResponseWriter, r *http.Request) {
	params, err := filterParams(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	data, err := h.service.HitRatesByPick(r.Context(), params)
	h.respond(w, r, data, err)
}

// GetHeatmap handles GET /hit-rates/heatmap.
func (h *DataHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	params, err := filterParams(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	data, err := h.service.Heatmap(r.Context(), params)
	h.respond(w, r, data, err)
}

// GetValueTable handles GET /hit-rates/value-table.
func (h *DataHandler) GetValueTable(w http.ResponseWriter, r *http.Request) {
	params, err := filterParams(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	data, err := h.service.ValueTable(r.Context(), params)
	h.respond(w, r, data, err)
}
