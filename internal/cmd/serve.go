package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/seller-dashboard/internal/config"
	"github.com/rogerio-castellano/seller-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/seller-dashboard/internal/db"
	apphttp "github.com/rogerio-castellano/seller-dashboard/internal/http"
	"github.com/rogerio-castellano/seller-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/seller-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
	"github.com/rogerio-castellano/seller-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/seller-dashboard/internal/session"
	"github.com/rogerio-castellano/seller-dashboard/internal/view"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront web server",
		Long: `Start the web server which provides:
- the public storefront with the newest listings and the seller directory
- login and registration pages
- the seller dashboard with charts and product management
- a JSON view of the dashboard under /api/v1, documented at /swagger/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg

	var (
		rdb      *redis.Client
		database *sql.DB
	)
	store, err := a.sessionStore(ctx, &rdb, &database)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}
	if database != nil {
		defer database.Close()
	}

	engine, err := view.NewEngine()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	h := handlers.NewHandler(handlers.Deps{
		Client:        a.client(nil),
		Sessions:      store,
		Views:         engine,
		Redis:         rdb,
		SecureCookies: cfg.Server.SecureCookies,
		SessionTTL:    cfg.Session.TTL,
		Dashboard: dashboard.Options{
			PageSize:        cfg.Dashboard.PageSize,
			NotificationTTL: cfg.Dashboard.NotificationTTL,
		},
	})

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: apphttp.NewRouter(h, apphttp.RouterOptions{
			RequestTimeout: cfg.Server.RequestTimeout,
			Development:    cfg.Environment() != config.Production,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.Registry().Run(ctx, sweepInterval)
		return nil
	})
	g.Go(func() error {
		rl.StartVisitorCleanupLoop(ctx)
		return nil
	})
	g.Go(func() error {
		logx.Info().Str("addr", srv.Addr).Str("api", cfg.API.BaseURL).Str("sessions", cfg.Session.Driver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logx.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// sessionStore opens the store named by session.driver, connecting to redis
// or postgres when needed.
func (a *app) sessionStore(ctx context.Context, rdb **redis.Client, database **sql.DB) (session.Store, error) {
	cfg := a.cfg
	switch cfg.Session.Driver {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		client, err := redissvc.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis: %w", err)
		}
		*rdb = client
		return session.NewRedisStore(client, cfg.Session.TTL), nil
	case "postgres":
		conn, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("could not connect to database: %w", err)
		}
		store := session.NewPostgresStore(conn, cfg.Session.TTL)
		if err := store.Migrate(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("migrate sessions: %w", err)
		}
		*database = conn
		return store, nil
	}
	return session.NewFileStore(a.sessionPath()), nil
}
