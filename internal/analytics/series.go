package analytics

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// SeriesKind selects the metric a chart series ranks products by.
type SeriesKind string

const (
	SeriesPrice    SeriesKind = "price"
	SeriesQuantity SeriesKind = "quantity"
	SeriesValue    SeriesKind = "value"
)

// Chart defaults used by the dashboard.
const (
	DefaultSeriesLimit = 7
	TopValueLimit      = 5
	LabelMaxRunes      = 12
)

// Palette is cycled through when colouring the top-value series.
var Palette = []string{"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"}

// SeriesPoint is one bar of a chart.
type SeriesPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ParseSeriesKind returns the kind named by s and whether it is known.
func ParseSeriesKind(s string) (SeriesKind, bool) {
	switch k := SeriesKind(strings.ToLower(strings.TrimSpace(s))); k {
	case SeriesPrice, SeriesQuantity, SeriesValue:
		return k, true
	}
	return "", false
}

// ComputeChartSeries ranks products by kind, descending, and keeps the first
// limit entries. Equal values keep their input order. limit <= 0 keeps all.
func ComputeChartSeries(products []models.Product, kind SeriesKind, limit int) []SeriesPoint {
	metric := metricFor(kind)
	if metric == nil {
		return nil
	}

	points := make([]SeriesPoint, 0, len(products))
	for _, p := range products {
		points = append(points, SeriesPoint{Name: TruncateLabel(p.Name, LabelMaxRunes), Value: metric(p)})
	}

	slices.SortStableFunc(points, func(a, b SeriesPoint) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		}
		return 0
	})

	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}
	return points
}

// TopValueSeries returns the five listings holding the most stock value,
// coloured from Palette.
func TopValueSeries(products []models.Product) []SeriesPoint {
	points := ComputeChartSeries(products, SeriesValue, TopValueLimit)
	for i := range points {
		points[i].Color = Palette[i%len(Palette)]
	}
	return points
}

func metricFor(kind SeriesKind) func(models.Product) float64 {
	switch kind {
	case SeriesPrice:
		return priceOf
	case SeriesQuantity:
		return func(p models.Product) float64 { return float64(quantityOf(p)) }
	case SeriesValue:
		return func(p models.Product) float64 { return priceOf(p) * float64(quantityOf(p)) }
	}
	return nil
}

// TruncateLabel shortens s to max runes, marking the cut with "...".
func TruncateLabel(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
