package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nucleargandhihello/The-Briefing/internal/cache"
	"github.com/nucleargandhihello/The-Briefing/internal/config"
	"github.com/nucleargandhihello/The-Briefing/internal/generate"
	"github.com/nucleargandhihello/The-Briefing/internal/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagAddr   string
)

var rootCmd = &cobra.Command{
	Use:   "the-briefing",
	Short: "Satirical news backend",
	Long:  "the-briefing generates satirical news articles through a generative-language API, caches the latest batch, and republishes it as an RSS feed.",
	RunE:  runServe,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("the-briefing %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	key := cfg.Key()
	if key == "" {
		log.Warn("GEMINI_API_KEY not set; /api/generate will fail until configured")
	}

	store := cache.NewStore()
	gen := generate.New(key, cfg.Models, log)
	srv := server.New(cfg, store, gen, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
