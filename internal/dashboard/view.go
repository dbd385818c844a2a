package dashboard

import (
	"time"

	"github.com/rogerio-castellano/seller-dashboard/internal/analytics"
	"github.com/rogerio-castellano/seller-dashboard/internal/catalog"
	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// RecentLimit is the number of newest listings on the overview tab.
const RecentLimit = 5

// ProductRow is a product as presented in tables, cards and modals.
type ProductRow struct {
	models.Product
	StockStatus string    `json:"stock_status"`
	Listed      time.Time `json:"listed"`
	Value       float64   `json:"value"`
}

func rowFor(p models.Product, now time.Time) ProductRow {
	return ProductRow{
		Product:     p,
		StockStatus: p.StockStatus(),
		Listed:      p.DisplayCreatedAt(now),
		Value:       p.Value(),
	}
}

// Rows converts products for display, keeping their order.
func Rows(products []models.Product, now time.Time) []ProductRow {
	rows := make([]ProductRow, len(products))
	for i, p := range products {
		rows[i] = rowFor(p, now)
	}
	return rows
}

// View is a snapshot of everything the dashboard renders.
type View struct {
	Tab              Tab                      `json:"tab"`
	Theme            string                   `json:"theme"`
	SidebarCollapsed bool                     `json:"sidebar_collapsed"`
	Loading          bool                     `json:"loading"`
	Saving           bool                     `json:"saving"`
	User             models.User              `json:"user"`
	Search           string                   `json:"search"`
	Sort             catalog.SortKey          `json:"sort"`
	Stats            analytics.Stats          `json:"stats"`
	Products         catalog.Page[ProductRow] `json:"products"`
	Recent           []ProductRow             `json:"recent"`
	PriceSeries      []analytics.SeriesPoint  `json:"price_series"`
	QuantitySeries   []analytics.SeriesPoint  `json:"quantity_series"`
	ValueSeries      []analytics.SeriesPoint  `json:"value_series"`
	Histogram        []analytics.Bucket       `json:"histogram"`
	Form             FormModal                `json:"-"`
	Detail           *ProductRow              `json:"detail,omitempty"`
	PendingDelete    *ProductRow              `json:"pending_delete,omitempty"`
	Notifications    []Notification           `json:"notifications"`
	GeneratedAt      time.Time                `json:"generated_at"`
}

// View derives the current view state from scratch.
func (c *Controller) View(now time.Time) View {
	c.mu.Lock()
	raw := c.products
	v := View{
		Tab:              c.tab,
		Theme:            c.theme,
		SidebarCollapsed: c.sidebarCollapsed,
		Loading:          c.loading > 0,
		Saving:           c.saving,
		Search:           c.search,
		Sort:             c.sort,
		Form:             c.form,
		GeneratedAt:      now,
	}
	page := c.page
	detailID := c.detail.ProductID
	if !c.detail.Open {
		detailID = ""
	}
	pendingID := c.pendingDelete
	c.mu.Unlock()

	if c.sess != nil {
		v.User = c.sess.User()
	}

	rows := Rows(catalog.ApplyFilter(raw, v.Search, v.Sort), now)
	v.Products = catalog.Paginate(rows, page, c.pageSize)

	newest := catalog.ApplyFilter(raw, "", catalog.SortByDate)
	for _, p := range newest[:min(RecentLimit, len(newest))] {
		v.Recent = append(v.Recent, rowFor(p, now))
	}

	v.Stats = analytics.ComputeStats(raw)
	v.PriceSeries = analytics.ComputeChartSeries(raw, analytics.SeriesPrice, analytics.DefaultSeriesLimit)
	v.QuantitySeries = analytics.ComputeChartSeries(raw, analytics.SeriesQuantity, analytics.DefaultSeriesLimit)
	v.ValueSeries = analytics.TopValueSeries(raw)
	v.Histogram = analytics.PriceHistogram(raw)

	for _, p := range raw {
		if detailID != "" && p.ID == detailID {
			row := rowFor(p, now)
			v.Detail = &row
		}
		if pendingID != "" && p.ID == pendingID {
			row := rowFor(p, now)
			v.PendingDelete = &row
		}
	}

	v.Notifications = c.notifier.Active()
	return v
}
