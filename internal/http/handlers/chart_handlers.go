package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/seller-dashboard/internal/analytics"
	"github.com/rogerio-castellano/seller-dashboard/internal/analytics/svg"
	"github.com/rogerio-castellano/seller-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
)

type chartSpec struct {
	title    string
	desc     string
	currency string
	points   func(dashboard.View) []analytics.SeriesPoint
}

var charts = map[string]chartSpec{
	"value": {
		title:    "Top products by stock value",
		desc:     "Price times quantity for the five most valuable listings",
		currency: "$",
		points:   func(v dashboard.View) []analytics.SeriesPoint { return v.ValueSeries },
	},
	"price": {
		title:    "Highest priced products",
		desc:     "Unit price of the most expensive listings",
		currency: "$",
		points:   func(v dashboard.View) []analytics.SeriesPoint { return v.PriceSeries },
	},
	"quantity": {
		title:  "Largest stock",
		desc:   "Units in stock for the best stocked listings",
		points: func(v dashboard.View) []analytics.SeriesPoint { return v.QuantitySeries },
	},
	"histogram": {
		title:  "Price distribution",
		desc:   "Number of listings per price range",
		points: func(v dashboard.View) []analytics.SeriesPoint { return analytics.HistogramSeries(v.Histogram) },
	},
}

// ChartHandler renders one dashboard chart as SVG.
func (h *Handler) ChartHandler(w http.ResponseWriter, r *http.Request) {
	spec, ok := charts[chi.URLParam(r, "kind")]
	if !ok {
		http.Error(w, "unknown chart", http.StatusNotFound)
		return
	}

	points := spec.points(h.controller(r).View(h.now()))
	bars := make([]svg.Bar, 0, len(points))
	for _, p := range points {
		bars = append(bars, svg.Bar{Label: p.Name, Value: p.Value, Color: p.Color})
	}
	if len(bars) == 0 {
		bars = append(bars, svg.Bar{Label: "No data"})
	}

	out, err := svg.Bars(svg.DefaultWidth, svg.DefaultHeight, bars, svg.BarOpts{
		Title:       spec.title,
		Description: spec.desc,
		Currency:    spec.currency,
	})
	if err != nil {
		logx.Error().Err(err).Str("chart", chi.URLParam(r, "kind")).Msg("render chart")
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		logx.Warn().Err(err).Msg("write chart")
	}
}
