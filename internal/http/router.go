package http

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/seller-dashboard/docs"
	"github.com/rogerio-castellano/seller-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/seller-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/seller-dashboard/web"
)

// RouterOptions tune the middleware stack.
type RouterOptions struct {
	RequestTimeout time.Duration
	Development    bool
	// RequestsPerMinute is the global per-IP budget; 0 uses 120.
	RequestsPerMinute int
}

func NewRouter(h *handlers.Handler, opts RouterOptions) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 120
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(httprate.Limit(opts.RequestsPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	r.Group(func(r chi.Router) {
		r.Use(SecureHeaders(opts.Development))
		r.Use(h.LoadSession)

		r.Get("/", h.LandingHandler)
		r.Get("/login", h.LoginPage)
		r.With(rl.Middleware).Post("/login", h.LoginHandler)
		r.Get("/register", h.RegisterPage)
		r.With(rl.Middleware).Post("/register", h.RegisterHandler)
		r.Post("/logout", h.LogoutHandler)

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(h.RequireLogin)
			r.Get("/", h.DashboardHandler)
			r.Post("/refresh", h.RefreshHandler)
			r.Get("/products/new", h.NewProductHandler)
			r.Post("/products", h.CreateProductHandler)
			r.Get("/products/{id}", h.ProductDetailHandler)
			r.Post("/products/{id}", h.UpdateProductHandler)
			r.Get("/products/{id}/edit", h.EditProductHandler)
			r.Post("/products/{id}/delete", h.RequestDeleteHandler)
			r.Post("/delete/confirm", h.ConfirmDeleteHandler)
			r.Post("/delete/cancel", h.CancelDeleteHandler)
			r.Post("/modal/close", h.CloseModalHandler)
			r.Post("/theme", h.ToggleThemeHandler)
			r.Post("/sidebar", h.ToggleSidebarHandler)
			r.Get("/charts/{kind}.svg", h.ChartHandler)
		})

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(h.RequireLogin)
			r.Get("/view", h.GetViewHandler)
			r.Get("/stats", h.GetStatsHandler)
			r.Get("/series/{kind}", h.GetSeriesHandler)
			r.Get("/histogram", h.GetHistogramHandler)
			r.Delete("/notifications/{id}", h.DismissNotificationHandler)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	return r
}
