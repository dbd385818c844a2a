// Package analytics derives dashboard statistics and chart series from a
// product list. Every function is pure and recomputes from scratch.
package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// Stats summarises a product list for the dashboard cards.
type Stats struct {
	TotalProducts   int     `json:"total_products"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalQuantity   int     `json:"total_quantity"`
	AvgPrice        float64 `json:"avg_price"`
	LowStockCount   int     `json:"low_stock_count"`
	OutOfStockCount int     `json:"out_of_stock_count"`
}

// ComputeStats returns the statistics of products. Sums run on decimals so the
// result does not depend on input order.
func ComputeStats(products []models.Product) Stats {
	s := Stats{TotalProducts: len(products)}
	if len(products) == 0 {
		return s
	}

	revenue := decimal.Zero
	priceSum := decimal.Zero
	for _, p := range products {
		price := decimal.NewFromFloat(priceOf(p))
		qty := quantityOf(p)

		revenue = revenue.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		priceSum = priceSum.Add(price)
		s.TotalQuantity += qty

		switch p.StockStatus() {
		case models.StatusLowStock:
			s.LowStockCount++
		case models.StatusOutOfStock:
			s.OutOfStockCount++
		}
	}

	s.TotalRevenue = revenue.Round(2).InexactFloat64()
	s.AvgPrice = priceSum.Div(decimal.NewFromInt(int64(len(products)))).InexactFloat64()
	return s
}

// priceOf guards against values that bypassed wire decoding.
func priceOf(p models.Product) float64 {
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
		return 0
	}
	return p.Price
}

func quantityOf(p models.Product) int {
	if p.Quantity < 0 {
		return 0
	}
	return p.Quantity
}
