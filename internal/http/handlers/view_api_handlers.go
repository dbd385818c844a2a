package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/seller-dashboard/internal/analytics"
	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
)

// GetViewHandler godoc
// @Summary Current dashboard view of the logged-in seller
// @Tags dashboard
// @Produce json
// @Success 200 {object} ViewResponse
// @Failure 401 {string} string "Missing or expired session"
// @Router /api/v1/view [get]
func (h *Handler) GetViewHandler(w http.ResponseWriter, r *http.Request) {
	v := h.controller(r).View(h.now())
	if err := writeJSON(w, http.StatusOK, toViewResponse(v)); err != nil {
		logx.Error().Err(err).Msg("write view")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// GetStatsHandler godoc
// @Summary Inventory statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} analytics.Stats
// @Failure 401 {string} string "Missing or expired session"
// @Router /api/v1/stats [get]
func (h *Handler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats := analytics.ComputeStats(h.controller(r).Products())
	if err := writeJSON(w, http.StatusOK, stats); err != nil {
		logx.Error().Err(err).Msg("write stats")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// GetSeriesHandler godoc
// @Summary Products ranked by price, quantity or stock value
// @Tags dashboard
// @Produce json
// @Param kind path string true "price, quantity or value"
// @Param limit query int false "Maximum number of points, 0 for all"
// @Success 200 {object} SeriesResponse
// @Failure 400 {string} string "Invalid limit"
// @Failure 404 {string} string "Unknown series"
// @Router /api/v1/series/{kind} [get]
func (h *Handler) GetSeriesHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := analytics.ParseSeriesKind(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, "unknown series", http.StatusNotFound)
		return
	}

	limit := analytics.DefaultSeriesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	points := analytics.ComputeChartSeries(h.controller(r).Products(), kind, limit)
	if err := writeJSON(w, http.StatusOK, SeriesResponse{Kind: string(kind), Points: points}); err != nil {
		logx.Error().Err(err).Msg("write series")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// GetHistogramHandler godoc
// @Summary Listings per price range
// @Tags dashboard
// @Produce json
// @Success 200 {object} HistogramResponse
// @Router /api/v1/histogram [get]
func (h *Handler) GetHistogramHandler(w http.ResponseWriter, r *http.Request) {
	buckets := analytics.PriceHistogram(h.controller(r).Products())
	if err := writeJSON(w, http.StatusOK, HistogramResponse{Buckets: buckets}); err != nil {
		logx.Error().Err(err).Msg("write histogram")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// DismissNotificationHandler godoc
// @Summary Dismiss a notification before it expires
// @Tags dashboard
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {string} string "Notification not found"
// @Router /api/v1/notifications/{id} [delete]
func (h *Handler) DismissNotificationHandler(w http.ResponseWriter, r *http.Request) {
	if !h.controller(r).Notifier().Dismiss(chi.URLParam(r, "id")) {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
