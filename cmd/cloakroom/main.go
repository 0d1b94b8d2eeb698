package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/cloakroom/internal/application"
	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
	"github.com/eugenenazirov/cloakroom/internal/config"
	"github.com/eugenenazirov/cloakroom/internal/logging"
	"github.com/eugenenazirov/cloakroom/internal/shell"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("cloakroom", "Cloakroom - deposit items in numbered lockers and collect them with a key")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	lockers := kingpinApp.Flag("lockers", "Number of lockers in the cloakroom").Default("0").Int()
	maxItems := kingpinApp.Flag("max-items", "Number of items each locker can hold").Default("0").Int()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	serveCmd := kingpinApp.Command("serve", "Run the cloakroom HTTP service").Default()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	interactiveCmd := kingpinApp.Command("interactive", "Run the cloakroom as an interactive text menu")
	askLayout := interactiveCmd.Flag("ask", "Prompt for the number of lockers and their capacity").Bool()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile:        *configFile,
		NumLockers:        lockers,
		MaxItemsPerLocker: maxItems,
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *port != "" {
		overrides.Port = port
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case interactiveCmd.FullCommand():
		if err := runInteractive(cfg, *askLayout, os.Stdin, os.Stdout, logger); err != nil {
			logger.Fatal("interactive session failed", zap.Error(err))
		}
	default:
		app, err := application.New(cfg, logger)
		if err != nil {
			logger.Fatal("failed to initialize application", zap.Error(err))
		}

		if err := app.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}

		shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	}
}

func runInteractive(cfg config.Config, ask bool, in io.Reader, out io.Writer, logger *zap.Logger) error {
	console := shell.NewConsole(in, out)

	numLockers, maxItems := cfg.NumLockers, cfg.MaxItemsPerLocker
	if ask {
		var err error
		numLockers, maxItems, err = shell.PromptLayout(console)
		if err != nil {
			if errors.Is(err, shell.ErrInputClosed) {
				return nil
			}
			return err
		}
	}

	room, err := cloakroom.New(numLockers, maxItems)
	if err != nil {
		return fmt.Errorf("create cloakroom: %w", err)
	}
	return shell.New(room, console, logger).Run()
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
