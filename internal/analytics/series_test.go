package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

func TestComputeChartSeries_TopNByPrice(t *testing.T) {
	var products []models.Product
	prices := []float64{15, 3, 99, 42, 7, 81, 23, 64, 1, 50}
	for i, price := range prices {
		products = append(products, models.Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("P%d", i), Price: price})
	}

	series := ComputeChartSeries(products, SeriesPrice, 7)

	require.Len(t, series, 7)
	var got []float64
	for _, p := range series {
		got = append(got, p.Value)
	}
	assert.Equal(t, []float64{99, 81, 64, 50, 42, 23, 15}, got)
}

func TestComputeChartSeries_StableTies(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "first", Quantity: 5},
		{ID: "2", Name: "second", Quantity: 9},
		{ID: "3", Name: "third", Quantity: 5},
		{ID: "4", Name: "fourth", Quantity: 5},
	}

	series := ComputeChartSeries(products, SeriesQuantity, 0)

	var names []string
	for _, p := range series {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"second", "first", "third", "fourth"}, names)
}

func TestComputeChartSeries_TruncatesLabels(t *testing.T) {
	products := []models.Product{{ID: "1", Name: "Extra Long Winter Jacket", Price: 10}}

	series := ComputeChartSeries(products, SeriesPrice, 1)

	require.Len(t, series, 1)
	assert.Equal(t, "Extra Long W...", series[0].Name)
}

func TestComputeChartSeries_UnknownKind(t *testing.T) {
	assert.Nil(t, ComputeChartSeries([]models.Product{{ID: "1"}}, SeriesKind("rating"), 3))
}

func TestComputeChartSeries_DoesNotMutateInput(t *testing.T) {
	products := []models.Product{{ID: "1", Price: 1}, {ID: "2", Price: 2}}

	_ = ComputeChartSeries(products, SeriesPrice, 0)

	assert.Equal(t, "1", products[0].ID)
}

func TestTopValueSeries_ColorsCyclePalette(t *testing.T) {
	var products []models.Product
	for i := range 8 {
		products = append(products, models.Product{ID: fmt.Sprint(i), Name: fmt.Sprint(i), Price: float64(i + 1), Quantity: 2})
	}

	series := TopValueSeries(products)

	require.Len(t, series, TopValueLimit)
	assert.Equal(t, 16.0, series[0].Value)
	for i, p := range series {
		assert.Equal(t, Palette[i%len(Palette)], p.Color)
	}
}

func TestParseSeriesKind(t *testing.T) {
	k, ok := ParseSeriesKind(" Price ")
	assert.True(t, ok)
	assert.Equal(t, SeriesPrice, k)

	_, ok = ParseSeriesKind("stars")
	assert.False(t, ok)
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", TruncateLabel("short", 12))
	assert.Equal(t, "Ünïcödé...", TruncateLabel("Ünïcödé names", 7))
}
