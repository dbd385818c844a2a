package analytics

import (
	"math"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// Bucket is one price range of the histogram. Upper is nil for the open-ended
// last range.
type Bucket struct {
	Label string   `json:"label"`
	Upper *float64 `json:"upper,omitempty"`
	Count int      `json:"count"`
}

// priceRanges are checked in order; a price belongs to the first range whose
// upper bound it does not exceed.
var priceRanges = []struct {
	label string
	upper float64
}{
	{"0-50", 50},
	{"51-100", 100},
	{"101-200", 200},
	{"201-500", 500},
	{"500+", math.Inf(1)},
}

// PriceHistogram counts products per fixed price range. The result always has
// the same five buckets in the same order.
func PriceHistogram(products []models.Product) []Bucket {
	buckets := make([]Bucket, len(priceRanges))
	for i, r := range priceRanges {
		buckets[i] = Bucket{Label: r.label}
		if !math.IsInf(r.upper, 1) {
			upper := r.upper
			buckets[i].Upper = &upper
		}
	}

	for _, p := range products {
		price := priceOf(p)
		for i, r := range priceRanges {
			if price <= r.upper {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// HistogramSeries converts buckets into chart points.
func HistogramSeries(buckets []Bucket) []SeriesPoint {
	points := make([]SeriesPoint, len(buckets))
	for i, b := range buckets {
		points[i] = SeriesPoint{Name: b.Label, Value: float64(b.Count), Color: Palette[i%len(Palette)]}
	}
	return points
}
