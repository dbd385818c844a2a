package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/config"
	"github.com/rogerio-castellano/seller-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
	"github.com/rogerio-castellano/seller-dashboard/internal/session"
)

// cliSessionKey is the FileStore key of the command line session.
const cliSessionKey = "cli"

var errNotLoggedIn = errors.New("not logged in, run `storefront login` first")

// app carries what every command needs once configuration is loaded.
type app struct {
	configFile  string
	sessionFile string
	cfg         *config.Config
}

// NewRootCmd builds the storefront command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Seller storefront and dashboard",
		Long: `Storefront serves the public product storefront and the seller dashboard
on top of a remote product service.

Run "storefront serve" for the web interface, or manage your listings from
the terminal after "storefront login".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./config.yaml, ./deploy/config.yaml or ~/.storefront/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "where the command line session is kept (default: ~/.storefront/session.json)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProductsCmd(a),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment(), Output: cmd.ErrOrStderr()})
	return nil
}

func (a *app) client(tokens api.TokenSource) *api.Client {
	return api.NewClient(api.Config{
		BaseURL:      a.cfg.API.BaseURL,
		ProductsPath: a.cfg.API.ProductsPath,
		SellersPath:  a.cfg.API.SellersPath,
		Timeout:      a.cfg.API.Timeout,
	}, tokens)
}

func (a *app) sessionPath() string {
	switch {
	case a.sessionFile != "":
		return a.sessionFile
	case a.cfg.Session.File != "":
		return a.cfg.Session.File
	}
	return session.DefaultFilePath()
}

// session restores the command line session. A missing or expired session
// is not an error.
func (a *app) session(ctx context.Context) (*session.Context, error) {
	sc := session.NewContext(session.NewFileStore(a.sessionPath()), cliSessionKey)
	if _, err := sc.Load(ctx); err != nil && !errors.Is(err, session.ErrNoSession) {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sc, nil
}

// dashboard opens the logged-in seller's dashboard with products loaded.
func (a *app) dashboard(ctx context.Context) (*dashboard.Controller, error) {
	sc, err := a.session(ctx)
	if err != nil {
		return nil, err
	}
	if !sc.LoggedIn() {
		return nil, errNotLoggedIn
	}
	c := dashboard.New(a.client(sc), sc, dashboard.Options{
		PageSize:        a.cfg.Dashboard.PageSize,
		NotificationTTL: a.cfg.Dashboard.NotificationTTL,
	})
	if err := c.Load(ctx); err != nil {
		c.Close()
		return nil, userError(err, "Failed to load products")
	}
	return c, nil
}

// userError turns a service failure into the message a seller would see.
func userError(err error, fallback string) error {
	var verr *dashboard.ValidationError
	if errors.As(err, &verr) {
		return errors.New(verr.Message())
	}
	return errors.New(api.UserMessage(err, fallback))
}

// lastNotice is the newest toast of c, if any.
func lastNotice(c *dashboard.Controller) string {
	active := c.Notifier().Active()
	if len(active) == 0 {
		return ""
	}
	return active[len(active)-1].Message
}
