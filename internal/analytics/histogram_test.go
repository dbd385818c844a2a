package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

func TestPriceHistogram_Boundaries(t *testing.T) {
	tests := []struct {
		price float64
		label string
	}{
		{0, "0-50"},
		{50, "0-50"},
		{50.5, "51-100"},
		{51, "51-100"},
		{100, "51-100"},
		{101, "101-200"},
		{200, "101-200"},
		{201, "201-500"},
		{500, "201-500"},
		{500.01, "500+"},
		{9999, "500+"},
	}

	for _, tt := range tests {
		buckets := PriceHistogram([]models.Product{{ID: "x", Price: tt.price}})
		require.Len(t, buckets, 5)

		total := 0
		for _, b := range buckets {
			total += b.Count
			if b.Label == tt.label {
				assert.Equal(t, 1, b.Count, "price %v should land in %s", tt.price, tt.label)
			}
		}
		assert.Equal(t, 1, total, "price %v counted once", tt.price)
	}
}

func TestPriceHistogram_Empty(t *testing.T) {
	buckets := PriceHistogram(nil)

	var labels []string
	for _, b := range buckets {
		labels = append(labels, b.Label)
		assert.Zero(t, b.Count)
	}
	assert.Equal(t, []string{"0-50", "51-100", "101-200", "201-500", "500+"}, labels)
}

func TestPriceHistogram_EncodesAsJSON(t *testing.T) {
	buckets := PriceHistogram([]models.Product{{ID: "1", Price: 900}})

	out, err := json.Marshal(buckets)
	require.NoError(t, err)

	var decoded []struct {
		Label string   `json:"label"`
		Upper *float64 `json:"upper"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 5)
	require.NotNil(t, decoded[0].Upper)
	assert.Equal(t, 50.0, *decoded[0].Upper)
	assert.Nil(t, decoded[4].Upper)
	assert.Equal(t, 1, decoded[4].Count)
}

func TestHistogramSeries(t *testing.T) {
	series := HistogramSeries(PriceHistogram([]models.Product{{ID: "1", Price: 10}, {ID: "2", Price: 20}}))

	require.Len(t, series, 5)
	assert.Equal(t, "0-50", series[0].Name)
	assert.Equal(t, 2.0, series[0].Value)
}
