// reversi-tui plays Reversi in the terminal, optionally against the greedy
// engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/codex-reversi/internal/config"
	"github.com/jaminalder/codex-reversi/internal/domain"
	"github.com/jaminalder/codex-reversi/internal/engine"
	"github.com/jaminalder/codex-reversi/internal/tui"
)

var (
	flagWidth    = flag.Int("width", 0, "Board width")
	flagHeight   = flag.Int("height", 0, "Board height")
	flagComputer = flag.String("computer", "", "Let the engine play white or black")
	flagLogFile  = flag.String("log", "", "Write debug logs to this file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()

	// The terminal belongs to tview; logs go to a file or nowhere.
	logger, closeLog, err := newLogger(*flagLogFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %s\n", err)
		os.Exit(1)
	}
	defer closeLog()
	log.Logger = logger

	if *flagWidth > 0 {
		cfg.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Height = *flagHeight
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	var opts []tui.Option
	switch *flagComputer {
	case "":
	case "white":
		opts = append(opts, tui.WithComputer(domain.White))
	case "black":
		opts = append(opts, tui.WithComputer(domain.Black))
	default:
		fmt.Fprintf(os.Stderr, "unknown -computer %q (want white or black)\n", *flagComputer)
		os.Exit(2)
	}

	a := tui.New(engine.New(cfg.Width, cfg.Height), opts...)
	if err := a.Run(); err != nil {
		log.Error().Err(err).Msg("tui")
		fmt.Fprintf(os.Stderr, "%s\n", err)
		closeLog()
		os.Exit(1)
	}
}

// newLogger opens path for appending and filters at level. An empty path
// yields a disabled logger.
func newLogger(path string, level zerolog.Level) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger(), f.Close, nil
}
