package analytics

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))
	assert.Equal(t, Stats{}, ComputeStats([]models.Product{}))
}

func TestComputeStats_Totals(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Shirt", Price: 10, Quantity: 20},
		{ID: "2", Name: "Hat", Price: 5.5, Quantity: 2},
		{ID: "3", Name: "Shoes", Price: 0.1, Quantity: 0},
	}

	s := ComputeStats(products)

	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 211.0, s.TotalRevenue)
	assert.Equal(t, 22, s.TotalQuantity)
	assert.Equal(t, 5.2, s.AvgPrice)
	assert.Equal(t, 1, s.LowStockCount)
	assert.Equal(t, 1, s.OutOfStockCount)
}

func TestComputeStats_OrderInvariant(t *testing.T) {
	products := []models.Product{
		{ID: "1", Price: 0.1, Quantity: 3},
		{ID: "2", Price: 0.2, Quantity: 7},
		{ID: "3", Price: 19.99, Quantity: 11},
		{ID: "4", Price: 1234.56, Quantity: 1},
	}
	want := ComputeStats(products)

	permutations := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, perm := range permutations {
		shuffled := make([]models.Product, len(products))
		for i, j := range perm {
			shuffled[i] = products[j]
		}
		assert.Equal(t, want, ComputeStats(shuffled), "permutation %v", perm)
	}
}

func TestComputeStats_MalformedValuesCountAsZero(t *testing.T) {
	products := []models.Product{
		{ID: "1", Price: math.NaN(), Quantity: 4},
		{ID: "2", Price: math.Inf(1), Quantity: 1},
		{ID: "3", Price: 10, Quantity: -3},
		{ID: "4", Price: 2, Quantity: 2},
	}

	var s Stats
	require.NotPanics(t, func() { s = ComputeStats(products) })

	assert.Equal(t, 4, s.TotalProducts)
	assert.Equal(t, 4.0, s.TotalRevenue)
	assert.Equal(t, 7, s.TotalQuantity)
	assert.Equal(t, 3.0, s.AvgPrice)
	assert.False(t, math.IsNaN(s.TotalRevenue))
}

func TestComputeStats_ManyProducts(t *testing.T) {
	var products []models.Product
	for i := range 100 {
		products = append(products, models.Product{ID: fmt.Sprint(i), Price: 0.1, Quantity: 1})
	}

	s := ComputeStats(products)
	assert.Equal(t, 10.0, s.TotalRevenue)
	assert.Equal(t, 0.1, s.AvgPrice)
}

func TestComputeStats_AvgPriceIsExactMean(t *testing.T) {
	products := []models.Product{
		{ID: "1", Price: 1, Quantity: 1},
		{ID: "2", Price: 1, Quantity: 1},
		{ID: "3", Price: 2, Quantity: 1},
	}

	s := ComputeStats(products)

	assert.InDelta(t, 4.0/3.0, s.AvgPrice, 1e-9)
	assert.NotEqual(t, 1.33, s.AvgPrice)
}
