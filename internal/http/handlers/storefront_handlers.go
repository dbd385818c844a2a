package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/catalog"
	"github.com/rogerio-castellano/seller-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
	"github.com/rogerio-castellano/seller-dashboard/internal/models"
	"github.com/rogerio-castellano/seller-dashboard/internal/view"
)

// LandingLimit is the number of newest listings on the storefront.
const LandingLimit = 8

// LandingHandler renders the public storefront: the newest listings and the
// seller directory, fetched concurrently.
func (h *Handler) LandingHandler(w http.ResponseWriter, r *http.Request) {
	client := h.client
	if sc := SessionFromContext(r.Context()); sc != nil {
		client = client.WithTokens(sc)
	}

	var (
		products []models.Product
		sellers  []models.Seller
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		products, err = client.ListProducts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		sellers, err = client.ListSellers(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("list sellers")
		}
		return nil
	})

	page := view.LandingPage{}
	if err := g.Wait(); err != nil {
		logx.Error().Err(err).Msg("list products for storefront")
		page.Error = api.UserMessage(err, "Could not load products")
	}

	newest := catalog.ApplyFilter(products, "", catalog.SortByDate)
	page.Products = dashboard.Rows(newest[:min(LandingLimit, len(newest))], h.now())
	page.Sellers = sellers

	h.render(w, r, http.StatusOK, "pages/landing.html", view.TemplateData{Title: "Storefront", Data: page})
}
