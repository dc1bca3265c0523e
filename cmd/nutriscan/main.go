package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nutriscan/nutriscan/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "nutriscan",
	Short: "Barcode nutrition scoring backed by WHO/FDA guidelines",
	Long: `nutriscan scores packaged food products on a 0-100 scale (banded A-E)
from their per-100g nutrient values, with every penalty and bonus backed by a
public health citation. Product data comes from OpenFoodFacts.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(citationsCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
