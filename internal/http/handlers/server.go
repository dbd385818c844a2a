package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/seller-dashboard/internal/session"
	"github.com/rogerio-castellano/seller-dashboard/internal/view"
)

// DefaultCookieName names the browser session cookie.
const DefaultCookieName = "storefront_session"

// Deps are the collaborators of the web handlers.
type Deps struct {
	Client        *api.Client
	Sessions      session.Store
	Views         *view.Engine
	Redis         *redis.Client
	CookieName    string
	SecureCookies bool
	SessionTTL    time.Duration
	Dashboard     dashboard.Options
}

// Handler serves the storefront, the auth pages, the dashboard and the JSON
// view API.
type Handler struct {
	client     *api.Client
	sessions   session.Store
	views      *view.Engine
	rdb        *redis.Client
	registry   *dashboard.Registry
	validator  *validator.Validate
	cookieName string
	secure     bool
	sessionTTL time.Duration
	dashOpts   dashboard.Options
	now        func() time.Time
}

func NewHandler(d Deps) *Handler {
	if d.CookieName == "" {
		d.CookieName = DefaultCookieName
	}
	if d.Dashboard.Validator == nil {
		d.Dashboard.Validator = validator.New()
	}
	h := &Handler{
		client:     d.Client,
		sessions:   d.Sessions,
		views:      d.Views,
		rdb:        d.Redis,
		validator:  d.Dashboard.Validator,
		cookieName: d.CookieName,
		secure:     d.SecureCookies,
		sessionTTL: d.SessionTTL,
		dashOpts:   d.Dashboard,
		now:        time.Now,
	}
	h.registry = dashboard.NewRegistry(d.SessionTTL, h.newController)
	return h
}

// WithNow overrides the clock.
func (h *Handler) WithNow(now func() time.Time) *Handler {
	if now != nil {
		h.now = now
	}
	return h
}

// Registry exposes the per-session dashboards, e.g. to run idle eviction.
func (h *Handler) Registry() *dashboard.Registry { return h.registry }
