package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/app"
	"github.com/dokzlo13/smarthome/internal/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Support both -c and --config for config path
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file (built-in home when empty)")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	scriptPath := flag.String("script", "", "Run a Lua scenario instead of the interactive shell")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("smarthome", version)
		return
	}

	// Load configuration
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", configPath).Msg("Failed to load configuration")
		}
	}
	if *scriptPath != "" {
		cfg.Script = *scriptPath
	}

	// Setup logging
	setupLogging(cfg.Log.GetLevel(), cfg.Log.UseJSON, cfg.Log.Colors)

	// Create application
	application, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}
	log.Logger = log.With().Str("session", application.SessionID()).Logger()
	log.Info().Str("config", configPath).Str("version", version).Msg("Starting smarthome")

	// Create context that cancels on shutdown signal
	ctx := app.SignalContext()

	if cfg.Script != "" {
		err = application.RunScript(cfg.Script)
	} else {
		err = application.RunShell(ctx, os.Stdin, os.Stdout)
	}

	if closeErr := application.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("Error during shutdown")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Run failed")
	}
}

func setupLogging(level string, useJSON bool, colors bool) {
	// ISO 8601 format with timezone
	zerolog.TimeFieldFormat = time.RFC3339

	if useJSON {
		// JSON output for production
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Text output (with optional colors)
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			NoColor:    !colors,
		})
	}

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
