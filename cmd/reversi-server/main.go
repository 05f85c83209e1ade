// reversi-server hosts Reversi games over HTTP with htmx, SSE and WebSocket
// front ends.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/codex-reversi/internal/app"
	"github.com/jaminalder/codex-reversi/internal/config"
	"github.com/jaminalder/codex-reversi/internal/web"
)

var (
	flagConfig = flag.String("config", "", "Path to a YAML config file (default: XDG config dir)")
	flagAddr   = flag.String("addr", "", "Listen address")
	flagWidth  = flag.Int("width", 0, "Board width")
	flagHeight = flag.Int("height", 0, "Board height")
	flagLevel  = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flagSave   = flag.Bool("save-config", false, "Write the effective config to the XDG config dir")
)

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if *flagConfig != "" {
		cfg, err = config.LoadFile(*flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if *flagAddr != "" {
		cfg.Addr = *flagAddr
	}
	if *flagWidth > 0 {
		cfg.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Height = *flagHeight
	}
	if *flagLevel != "" {
		cfg.LogLevel = *flagLevel
	}
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	if *flagSave {
		if err := cfg.Save(); err != nil {
			log.Fatal().Err(err).Msg("save config")
		}
		log.Info().Msg("config saved")
	}

	svc := app.NewService(cfg.Width, cfg.Height)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.NewServer(svc, web.WithHeartbeat(cfg.Heartbeat)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr).Int("width", cfg.Width).Int("height", cfg.Height).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}
