package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/drewdunne/nlibot/internal/config"
	"github.com/drewdunne/nlibot/internal/event"
	"github.com/drewdunne/nlibot/internal/handler"
	xlog "github.com/drewdunne/nlibot/internal/log"
	"github.com/drewdunne/nlibot/internal/logging"
	"github.com/drewdunne/nlibot/internal/nli"
	_ "github.com/drewdunne/nlibot/internal/nli/olami"
	"github.com/drewdunne/nlibot/internal/registry"
	"github.com/drewdunne/nlibot/internal/server"
)

var version = "0.1.0"

const cleanupInterval = 24 * time.Hour

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServe(os.Args[2:])
	case "interpret":
		runInterpret(os.Args[2:])
	case "version":
		fmt.Printf("nlibot v%s\n", version)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: nlibot <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve      Start the webhook server")
	fmt.Println("  interpret  Interpret text once and print the intent as JSON")
	fmt.Println("  version    Print version information")
}

// loadConfig loads the env file and the YAML config shared by all commands.
func loadConfig(configPath, envFile string) (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else {
		// Try default locations
		godotenv.Load(".env")
		godotenv.Load("/etc/nlibot/nlibot.env")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to config file")
	envFile := fs.String("env-file", "", "Path to .env file (optional)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	xlog.Configure(xlog.Config{Level: cfg.Logging.Level, Version: version})
	logger := xlog.WithComponent("main")

	interpreter, err := nli.NewInterpreter(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create interpreter")
	}

	providers, err := registry.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create providers")
	}
	if len(providers.List()) == 0 {
		logger.Warn().Msg("no provider tokens configured; replies cannot be posted")
	}

	var transcripts *logging.Writer
	if cfg.Logging.Dir != "" {
		transcripts = logging.NewWriter(cfg.Logging.Dir)

		scheduler := logging.NewCleanupScheduler(
			logging.NewCleaner(cfg.Logging.Dir, cfg.Logging.RetentionDays),
			cleanupInterval,
		)
		scheduler.Start()
		defer scheduler.Stop()
	}

	replies := handler.NewReplyHandler(providers, transcripts, cfg.Bot.FallbackReply)
	router := event.NewRouter(cfg, replies.Handle, interpreter)
	srv := server.New(cfg, interpreter, router)

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Strs("providers", providers.List()).
		Msg("starting nlibot")

	if err := srv.ListenAndServeWithShutdown(); err != nil {
		logger.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}

func runInterpret(args []string) {
	fs := flag.NewFlagSet("interpret", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to config file")
	envFile := fs.String("env-file", "", "Path to .env file (optional)")
	fs.Parse(args)

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		fmt.Fprintln(os.Stderr, "Usage: nlibot interpret [options] <text...>")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	xlog.Configure(xlog.Config{Level: cfg.Logging.Level, Output: os.Stderr, Version: version})

	interpreter, err := nli.NewInterpreter(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create interpreter: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	intent, err := interpreter.Interpret(ctx, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Interpret failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(intent); err != nil {
		fmt.Fprintf(os.Stderr, "Encoding intent: %v\n", err)
		os.Exit(1)
	}
}
