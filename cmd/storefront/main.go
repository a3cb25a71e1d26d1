package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/storefront/internal/backend"
	"github.com/jhoicas/storefront/internal/infrastructure/pdf"
	"github.com/jhoicas/storefront/internal/infrastructure/storage"
	"github.com/jhoicas/storefront/internal/interfaces/console"
	apphttp "github.com/jhoicas/storefront/internal/interfaces/http"
	"github.com/jhoicas/storefront/pkg/config"
	"github.com/jhoicas/storefront/pkg/logger"
)

// embeddedSecret firma los tokens del backend en proceso cuando no hay JWT_SECRET.
const embeddedSecret = "storefront-embedded"

var (
	verbose bool
	quiet   time.Duration
	timeout time.Duration

	app   *console.App
	store storage.Store
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Consola de la tienda: sesión, catálogo, carrito y pedidos",
	Long: `Cliente de consola de la tienda.

La sesión y el carrito se guardan en el almacenamiento configurado
(STORAGE_DRIVER=file|sqlite|redis|memory). Con API_BASE_URL=embedded el
backend de referencia corre en el mismo proceso con datos de demostración.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log de depuración en stderr")
	rootCmd.PersistentFlags().DurationVar(&quiet, "settle", 1500*time.Millisecond, "Tiempo sin cambios para dar una vista por estable")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Tiempo máximo por comando")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd, profileCmd)
	rootCmd.AddCommand(openCmd, searchCmd, categoryCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(ordersCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func setup(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.App.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: os.Stderr})

	store, err = storage.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("abrir almacenamiento: %w", err)
	}

	var transport http.RoundTripper
	baseURL := cfg.API.BaseURL
	if cfg.API.Embedded() {
		secret := cfg.JWT.Secret
		if secret == "" {
			secret = embeddedSecret
		}
		srv, err := backend.Embedded(ctx, secret, log.Component("backend"))
		if err != nil {
			return fmt.Errorf("backend embebido: %w", err)
		}
		transport = &apphttp.InProcessTransport{App: srv}
		baseURL = "http://storefront.embedded/api/v1"
	}

	app = console.NewApp(console.Options{
		Store:      store,
		BaseURL:    baseURL,
		Transport:  transport,
		Timeout:    cfg.API.Timeout,
		SessionKey: cfg.Storage.SessionKey,
		CartKey:    cfg.Storage.CartKey,
		Redirect: console.CountdownConfig{
			Seconds:  cfg.Redirect.Seconds,
			Interval: cfg.Redirect.Interval,
			Path:     cfg.Redirect.Path,
		},
		Reports: pdf.NewMarotoReportGenerator(),
		Log:     log.Zerolog(),
	})
	return nil
}

func teardown() {
	if app != nil {
		app.Close()
	}
	if store != nil {
		_ = store.Close()
	}
}

// commandContext contexto acotado por --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// show navega a path y va imprimiendo la vista hasta que se estabiliza.
func show(cmd *cobra.Command, path string) string {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	app.Router.Navigate(path, console.NavState{})
	return app.Follow(ctx, quiet, func(render string) {
		fmt.Fprintln(cmd.OutOrStdout(), render)
		fmt.Fprintln(cmd.OutOrStdout(), "---")
	})
}
