package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/catalog"
	"github.com/rogerio-castellano/seller-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
	"github.com/rogerio-castellano/seller-dashboard/internal/session"
	"github.com/rogerio-castellano/seller-dashboard/internal/view"
)

const (
	maxUploadBytes = 8 << 20
	activityLimit  = 10
)

func (h *Handler) newController(key string) *dashboard.Controller {
	sc := session.NewContext(h.sessions, key).WithNow(h.now)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := sc.Load(ctx); err != nil && !errors.Is(err, session.ErrNoSession) {
		logx.Error().Err(err).Msg("load session for dashboard")
	}

	opts := h.dashOpts
	if h.rdb != nil {
		opts.Sink = dashboard.NewRedisSink(h.rdb, key)
	}
	return dashboard.New(h.client.WithTokens(sc), sc, opts)
}

// controller returns the dashboard of the request's session, loading the
// product list on first use.
func (h *Handler) controller(r *http.Request) *dashboard.Controller {
	c := h.registry.Get(SessionFromContext(r.Context()).Key())
	if !c.Loaded() {
		if err := c.Load(r.Context()); err != nil {
			logx.Warn().Err(err).Msg("initial product load")
		}
	}
	return c
}

// DashboardHandler renders the dashboard, applying any tab, search, sort
// and page given in the query string.
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)

	q := r.URL.Query()
	if q.Has("tab") {
		c.SetTab(q.Get("tab"))
	}
	if q.Has("q") {
		c.SetSearch(q.Get("q"))
	}
	if q.Has("sort") {
		c.SetSort(q.Get("sort"))
	}
	if q.Has("page") {
		if n, err := strconv.Atoi(q.Get("page")); err == nil {
			c.SetPage(n)
		}
	}

	v := c.View(h.now())
	page := view.DashboardPage{View: v, Tabs: dashboard.Tabs, SortKeys: catalog.SortKeys}
	if h.rdb != nil && v.Tab == dashboard.TabOverview {
		recent, err := dashboard.NewRedisSink(h.rdb, SessionFromContext(r.Context()).Key()).Recent(r.Context(), activityLimit)
		if err != nil {
			logx.Warn().Err(err).Msg("read activity")
		}
		page.Activity = recent
	}

	h.render(w, r, http.StatusOK, "pages/dashboard.html", view.TemplateData{
		Title:         "Dashboard",
		Theme:         v.Theme,
		Notifications: v.Notifications,
		Data:          page,
	})
}

func (h *Handler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	c := h.registry.Get(SessionFromContext(r.Context()).Key())
	if err := c.Load(r.Context()); err != nil {
		logx.Warn().Err(err).Msg("refresh products")
	}
	seeOther(w, r, "/dashboard")
}

func (h *Handler) NewProductHandler(w http.ResponseWriter, r *http.Request) {
	h.controller(r).OpenCreate()
	seeOther(w, r, "/dashboard")
}

// CreateProductHandler submits the create form. On failure the form stays
// open with its errors.
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	form, err := readProductForm(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	c := h.controller(r)
	if _, err := c.Create(r.Context(), form); err != nil {
		h.saveFailed(err)
	}
	seeOther(w, r, "/dashboard")
}

func (h *Handler) EditProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.controller(r).OpenEdit(chi.URLParam(r, "id")); err != nil {
		h.renderError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	seeOther(w, r, "/dashboard")
}

func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	form, err := readProductForm(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	c := h.controller(r)
	if _, err := c.Update(r.Context(), chi.URLParam(r, "id"), form); err != nil {
		h.saveFailed(err)
	}
	seeOther(w, r, "/dashboard")
}

func (h *Handler) ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.controller(r).OpenDetail(chi.URLParam(r, "id")); err != nil {
		h.renderError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	seeOther(w, r, "/dashboard")
}

func (h *Handler) RequestDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.controller(r).RequestDelete(chi.URLParam(r, "id")); err != nil {
		h.renderError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	seeOther(w, r, "/dashboard")
}

func (h *Handler) ConfirmDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.controller(r).ConfirmDelete(r.Context()); err != nil && !errors.Is(err, dashboard.ErrNoPendingDelete) {
		logx.Warn().Err(err).Msg("delete product")
	}
	seeOther(w, r, "/dashboard")
}

func (h *Handler) CancelDeleteHandler(w http.ResponseWriter, r *http.Request) {
	h.controller(r).CancelDelete()
	seeOther(w, r, "/dashboard")
}

// CloseModalHandler closes whichever modal is open.
func (h *Handler) CloseModalHandler(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)
	c.CloseForm()
	c.CloseDetail()
	c.CancelDelete()
	seeOther(w, r, "/dashboard")
}

func (h *Handler) ToggleThemeHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.controller(r).ToggleTheme(r.Context()); err != nil {
		logx.Warn().Err(err).Msg("toggle theme")
	}
	seeOther(w, r, redirectBack(r))
}

func (h *Handler) ToggleSidebarHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.controller(r).ToggleSidebar(r.Context()); err != nil {
		logx.Warn().Err(err).Msg("toggle sidebar")
	}
	seeOther(w, r, "/dashboard")
}

// saveFailed logs save errors the controller did not already surface as
// field errors or an in-progress notice.
func (h *Handler) saveFailed(err error) {
	var verr *dashboard.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, dashboard.ErrSaveInProgress):
	default:
		logx.Warn().Err(err).Msg("save product")
	}
}

func readProductForm(r *http.Request) (dashboard.ProductForm, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return dashboard.ProductForm{}, err
	}
	if r.PostForm == nil {
		if err := r.ParseForm(); err != nil {
			return dashboard.ProductForm{}, err
		}
	}

	form := dashboard.ProductForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
		Quantity:    r.PostFormValue("quantity"),
		Category:    r.PostFormValue("category"),
		SubCategory: r.PostFormValue("subCategory"),
		Sizes:       r.PostFormValue("sizes"),
		Colors:      r.PostFormValue("colors"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return dashboard.ProductForm{}, err
		}
		if len(data) > 0 {
			form.Image = &api.ImageUpload{Filename: header.Filename, Data: data}
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return dashboard.ProductForm{}, err
	}
	return form, nil
}

// redirectBack returns to the page the form was posted from when it is on
// this site.
func redirectBack(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return "/dashboard"
	}
	if u, err := r.URL.Parse(ref); err == nil && (u.Host == "" || u.Host == r.Host) && u.Path != "" {
		return u.RequestURI()
	}
	return "/dashboard"
}
