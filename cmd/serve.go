package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sdboard/sdboard/website/pkg/core"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serverConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return core.Run(ctx, cfg)
	},
}

// serverConfig builds the server configuration from flags, environment and config file.
func serverConfig() (core.ServerConfig, error) {
	cfg := core.ServerConfig{
		ListenAddr:      viper.GetString("server.listen"),
		ShutdownTimeout: viper.GetDuration("server.shutdown-timeout"),
		LogoLocation:    viper.GetString("assets.logo"),
		GeoJSONLocation: viper.GetString("assets.geojson"),
		Seed:            viper.GetUint64("data.seed"),
		AssetRetries:    viper.GetInt("assets.retries"),
		AssetTimeout:    viper.GetDuration("assets.timeout"),
	}
	asOf, err := reportDate()
	if err != nil {
		return core.ServerConfig{}, err
	}
	cfg.AsOf = asOf
	if cfg.ShutdownTimeout <= 0 {
		return core.ServerConfig{}, fmt.Errorf("server.shutdown-timeout must be positive, got %s", cfg.ShutdownTimeout)
	}
	return cfg, nil
}

// reportDate reads data.as-of. An empty value returns the zero time, meaning today.
func reportDate() (time.Time, error) {
	s := viper.GetString("data.as-of")
	if s == "" {
		return time.Time{}, nil
	}
	asOf, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid data.as-of %q: %w", s, err)
	}
	return asOf, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().String("logo", "", "Logo file path or http(s) URL")
	serveCmd.Flags().String("geojson", "", "Region boundary GeoJSON file path or http(s) URL")
	serveCmd.Flags().Uint64("seed", 42, "Seed of the sample data")
	serveCmd.Flags().String("as-of", "", "Report date (YYYY-MM-DD, default today)")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("assets.logo", serveCmd.Flags().Lookup("logo"))
	viper.BindPFlag("assets.geojson", serveCmd.Flags().Lookup("geojson"))
	viper.BindPFlag("data.seed", serveCmd.Flags().Lookup("seed"))
	viper.BindPFlag("data.as-of", serveCmd.Flags().Lookup("as-of"))
}
