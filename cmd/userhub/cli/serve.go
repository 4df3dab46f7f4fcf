package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/server"
	"github.com/userhub/userhub/internal/service"
	"github.com/userhub/userhub/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the userhub API server",
		Long:  "Start the HTTP server that exposes the auth, user, and health endpoints.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(dev bool) error {
	logLevel := slog.LevelInfo
	if dev {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store initialized", "driver", cfg.DatabaseDriver)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(st, tokens)

	srv := server.New(cfg, st, authSvc, tokens, logger)

	fmt.Printf("→ userhub\n")
	fmt.Printf("→ Listening on http://%s:%d\n", cfg.Host, cfg.Port)
	fmt.Printf("→ Health:  http://%s:%d/health\n", cfg.Host, cfg.Port)
	fmt.Printf("→ Rate limit: %d requests / %s per client\n", cfg.RateLimitMax, cfg.RateLimitWindow)
	fmt.Println()

	return srv.ListenAndServe()
}
