// Command tornadotracker reads the mechanical counter in photos of the
// tornado machine, keeps a report per photo and serves the history.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"tornado-tracker/internal/config"
	"tornado-tracker/internal/logger"
	"tornado-tracker/internal/ocr"
	"tornado-tracker/internal/pipeline"
	"tornado-tracker/internal/server"
	"tornado-tracker/internal/tracker"
	"tornado-tracker/internal/version"

	"github.com/rs/zerolog"
)

const usage = `Usage:
  tornadotracker parse <image> [-out dir] [-ocr]
  tornadotracker watch [image_folder] [analyzed_folder] [-workers n] [-listen addr] [-ocr]
  tornadotracker serve [analyzed_folder] [-listen addr]
  tornadotracker version

Settings default to the TRACKER_* environment variables and .env.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "parse":
		err = runParse(cfg, args)
	case "watch":
		err = runWatch(cfg, args)
	case "serve":
		err = runServe(cfg, args)
	case "version":
		fmt.Println(version.String())
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(1)
	}
}

// positional splits up to n leading non-flag arguments from args.
func positional(args []string, n int) ([]string, []string) {
	i := 0
	for i < len(args) && i < n && !strings.HasPrefix(args[i], "-") {
		i++
	}
	return args[:i], args[i:]
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(cfg.LogLevel, cfg.LogConsole)
}

func newTracker(cfg *config.Config, log zerolog.Logger, analyzed string) *tracker.Tracker {
	t := &tracker.Tracker{
		Registry: tracker.NewRegistry(analyzed),
		Parser: pipeline.NewParser(pipeline.Options{
			Logger: logger.Component(log, "pipeline"),
		}),
		Log: logger.Component(log, "tracker"),
	}
	if cfg.OCRCrossCheck {
		t.NewReader = func() (tracker.DigitReader, func() error, error) {
			engine, err := ocr.NewEngine()
			if err != nil {
				return nil, nil, err
			}
			return engine, engine.Close, nil
		}
	}
	return t
}

func runParse(cfg *config.Config, args []string) error {
	pos, rest := positional(args, 1)
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	out := fs.String("out", "", "Analyzed folder (default: <image folder>/analyzed)")
	useOCR := fs.Bool("ocr", cfg.OCRCrossCheck, "Add a Tesseract cross-check to the report")
	fs.Parse(rest)
	if len(pos) == 0 {
		pos = fs.Args()
	}
	if len(pos) != 1 {
		return errors.New("expected one image path")
	}
	image := pos[0]
	if *out == "" {
		*out = filepath.Join(filepath.Dir(image), "analyzed")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}
	cfg.OCRCrossCheck = *useOCR

	log := newLogger(cfg)
	e, err := newTracker(cfg, log, *out).Process(image, true)
	if err != nil {
		return err
	}
	fmt.Println(e.Digits())
	fmt.Println(e.ReportPath())
	if f := e.Failure(); f != "" {
		return fmt.Errorf("analysis failed: %s", f)
	}
	return nil
}

func runWatch(cfg *config.Config, args []string) error {
	pos, rest := positional(args, 2)
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	workers := fs.Int("workers", cfg.Workers, "Number of parallel parsers")
	listen := fs.String("listen", cfg.ListenAddr, "HTTP address; empty disables the server")
	useOCR := fs.Bool("ocr", cfg.OCRCrossCheck, "Add a Tesseract cross-check to the reports")
	fs.Parse(rest)
	if len(pos) > 0 {
		cfg.ImageDir = pos[0]
	}
	if len(pos) > 1 {
		cfg.AnalyzedDir = pos[1]
	}
	cfg.Workers, cfg.ListenAddr, cfg.OCRCrossCheck = *workers, *listen, *useOCR
	if cfg.AnalyzedDir != "" {
		if err := os.MkdirAll(cfg.AnalyzedDir, 0o755); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg)
	log.Info().Str("version", version.Version).Msg("starting")
	t := newTracker(cfg, log, cfg.AnalyzedDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	if cfg.ListenAddr != "" {
		srv := server.New(t.Registry, logger.Component(log, "http"))
		go func() {
			if err := srv.Run(ctx, cfg.ListenAddr); err != nil {
				errc <- err
				stop()
			}
		}()
	}

	w := &tracker.Watcher{
		Dir:        cfg.ImageDir,
		Workers:    cfg.Workers,
		Debounce:   cfg.Debounce,
		NewHandler: t.NewHandler,
		Log:        logger.Component(log, "watcher"),
	}
	if err := w.Run(ctx); err != nil {
		return err
	}
	select {
	case err := <-errc:
		return fmt.Errorf("http: %w", err)
	default:
		return nil
	}
}

func runServe(cfg *config.Config, args []string) error {
	pos, rest := positional(args, 1)
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", cfg.ListenAddr, "HTTP address")
	fs.Parse(rest)
	if len(pos) > 0 {
		cfg.AnalyzedDir = pos[0]
	}
	if cfg.AnalyzedDir == "" {
		return errors.New("analyzed folder is required")
	}

	log := newLogger(cfg)
	reg := tracker.NewRegistry(cfg.AnalyzedDir)
	if err := reg.Load(); err != nil {
		return err
	}
	log.Info().Int("readings", reg.Len()).Str("dir", cfg.AnalyzedDir).Msg("loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(reg, logger.Component(log, "http")).Run(ctx, *listen)
}
