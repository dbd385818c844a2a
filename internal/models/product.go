package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Stock status labels shown on product cards and tables.
const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"
)

// LowStockLimit is the highest quantity still reported as low stock.
const LowStockLimit = 10

// Product represents a listing as returned by the product service.
type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category,omitempty"`
	SubCategory string    `json:"subCategory,omitempty"`
	Sizes       []string  `json:"sizes,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	Status      string    `json:"status,omitempty"`
}

// StockStatus returns the explicit status when it is one of the known labels,
// otherwise derives it from the quantity.
func (p Product) StockStatus() string {
	switch p.Status {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return p.Status
	}
	return StatusForQuantity(p.Quantity)
}

// StatusForQuantity derives a stock status from a quantity.
func StatusForQuantity(qty int) string {
	switch {
	case qty <= 0:
		return StatusOutOfStock
	case qty <= LowStockLimit:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Value is the stock value of the listing (price x quantity).
func (p Product) Value() float64 {
	return p.Price * float64(p.Quantity)
}

// DisplayCreatedAt returns the creation time, or now when the service omitted it.
func (p Product) DisplayCreatedAt(now time.Time) time.Time {
	if p.CreatedAt.IsZero() {
		return now
	}
	return p.CreatedAt
}

type wireProduct struct {
	ID          string          `json:"_id"`
	AltID       string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Quantity    json.RawMessage `json:"quantity"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Sizes       json.RawMessage `json:"sizes"`
	Colors      json.RawMessage `json:"colors"`
	Image       string          `json:"image"`
	CreatedAt   json.RawMessage `json:"createdAt"`
	Status      string          `json:"status"`
}

// UnmarshalJSON decodes a product leniently: malformed numbers become zero,
// list fields may be arrays or comma-joined strings.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w wireProduct
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id := w.ID
	if id == "" {
		id = w.AltID
	}

	*p = Product{
		ID:          strings.TrimSpace(id),
		Name:        w.Name,
		Description: w.Description,
		Price:       parseAmount(w.Price),
		Quantity:    parseCount(w.Quantity),
		Category:    w.Category,
		SubCategory: w.SubCategory,
		Sizes:       parseList(w.Sizes),
		Colors:      parseList(w.Colors),
		Image:       w.Image,
		CreatedAt:   parseTime(w.CreatedAt),
		Status:      w.Status,
	}
	return nil
}

func rawScalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return string(raw)
}

func parseAmount(raw json.RawMessage) float64 {
	v, err := strconv.ParseFloat(rawScalar(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func parseCount(raw json.RawMessage) int {
	v := parseAmount(raw)
	if v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// SplitList splits a comma-joined list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseList(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '[':
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		var out []string
		for _, item := range items {
			out = append(out, SplitList(item)...)
		}
		return out
	case '"':
		return SplitList(rawScalar(raw))
	}
	return nil
}

func parseTime(raw json.RawMessage) time.Time {
	s := rawScalar(raw)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

// WithIdentifier drops records that cannot be addressed by identifier.
func WithIdentifier(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID != "" {
			out = append(out, p)
		}
	}
	return out
}
