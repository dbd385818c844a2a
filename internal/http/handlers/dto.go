package handlers

import (
	"time"

	"github.com/rogerio-castellano/seller-dashboard/internal/analytics"
	"github.com/rogerio-castellano/seller-dashboard/internal/dashboard"
)

type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type ProductsResult struct {
	Data []dashboard.ProductRow `json:"data"`
	Meta Meta                   `json:"meta"`
}

type ViewResponse struct {
	Tab           dashboard.Tab            `json:"tab"`
	Theme         string                   `json:"theme"`
	Search        string                   `json:"search"`
	Sort          string                   `json:"sort"`
	Loading       bool                     `json:"loading"`
	Saving        bool                     `json:"saving"`
	Stats         analytics.Stats          `json:"stats"`
	Products      ProductsResult           `json:"products"`
	Recent        []dashboard.ProductRow   `json:"recent"`
	Notifications []dashboard.Notification `json:"notifications"`
	GeneratedAt   time.Time                `json:"generated_at"`
}

type SeriesResponse struct {
	Kind   string                  `json:"kind"`
	Points []analytics.SeriesPoint `json:"points"`
}

type HistogramResponse struct {
	Buckets []analytics.Bucket `json:"buckets"`
}

func toViewResponse(v dashboard.View) ViewResponse {
	return ViewResponse{
		Tab:     v.Tab,
		Theme:   v.Theme,
		Search:  v.Search,
		Sort:    string(v.Sort),
		Loading: v.Loading,
		Saving:  v.Saving,
		Stats:   v.Stats,
		Products: ProductsResult{
			Data: v.Products.Items,
			Meta: Meta{
				Page:       v.Products.Page,
				PageSize:   v.Products.PageSize,
				TotalItems: v.Products.TotalItems,
				TotalPages: v.Products.TotalPages,
			},
		},
		Recent:        v.Recent,
		Notifications: v.Notifications,
		GeneratedAt:   v.GeneratedAt,
	}
}
