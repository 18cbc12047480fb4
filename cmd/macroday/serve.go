package macroday

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/macroday/macroday/internal/config"
	"github.com/macroday/macroday/internal/logger"
	"github.com/macroday/macroday/internal/server"
	"github.com/macroday/macroday/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the profile and stats API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.DBPath != "" && dbPath == "" {
			dbPath = cfg.DBPath
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		var log *logger.Logger
		if cfg.Env == "development" {
			log = logger.NewDevelopment()
		} else {
			gin.SetMode(gin.ReleaseMode)
			log = logger.New()
		}
		defer log.Sync()

		return withStore(func(st *store.Store) error {
			srv := &http.Server{
				Addr:    cfg.Server.Addr,
				Handler: server.New(st, log).Router(),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Infow("listening", "addr", cfg.Server.Addr, "env", cfg.Env)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Infow("shutting down", "timeout", cfg.ShutdownTimeout)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}
