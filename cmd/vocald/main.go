// Command vocald is the Vocal disfluency analysis server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gurnoornatt/vocal/internal/analysis/filler"
	"github.com/gurnoornatt/vocal/internal/analysis/stutter"
	"github.com/gurnoornatt/vocal/internal/annotate"
	"github.com/gurnoornatt/vocal/internal/config"
	"github.com/gurnoornatt/vocal/internal/engine"
	"github.com/gurnoornatt/vocal/internal/health"
	"github.com/gurnoornatt/vocal/internal/observe"
	"github.com/gurnoornatt/vocal/internal/server"
	"github.com/gurnoornatt/vocal/internal/session"
	"github.com/gurnoornatt/vocal/internal/stt"
	"github.com/gurnoornatt/vocal/internal/transcript"
	"github.com/gurnoornatt/vocal/internal/transcript/phonetic"
)

const defaultSampleRate = 16000

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "vocald: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "vocald: %v\n", err)
		}
		return 1
	}

	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("vocald starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Observability ─────────────────────────────────────────────────────────
	shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "vocald"})
	if err != nil {
		slog.Error("failed to initialise metrics", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			slog.Warn("metrics shutdown error", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	// ── Analysis pipeline ─────────────────────────────────────────────────────
	annotator := annotate.SingleFlight(annotate.NewEnglish())
	eng := engine.New(
		filler.New(annotator),
		stutter.New(annotator),
		engine.WithMetrics(metrics),
	)

	// ── Speech-to-text ────────────────────────────────────────────────────────
	sampleRate := cfg.STT.SampleRate
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}

	var transcriber stt.Transcriber
	if cfg.STT.ModelPath != "" {
		var whisperOpts []stt.WhisperOption
		if cfg.STT.Language != "" {
			whisperOpts = append(whisperOpts, stt.WithLanguage(cfg.STT.Language))
		}
		whisperOpts = append(whisperOpts, stt.WithSampleRate(sampleRate))
		transcriber, err = stt.NewWhisper(cfg.STT.ModelPath, whisperOpts...)
		if err != nil {
			slog.Error("failed to load whisper model", "err", err)
			return 1
		}
	} else {
		slog.Warn("stt.model_path is empty; using the mock transcriber — audio sessions will not produce real transcripts")
		transcriber = &stt.Mock{SampleRate: sampleRate}
	}
	defer func() {
		if err := transcriber.Close(); err != nil {
			slog.Warn("transcriber close error", "err", err)
		}
	}()

	// ── Practice-word correction ──────────────────────────────────────────────
	var matcherOpts []phonetic.Option
	if cfg.Analysis.PhoneticThreshold > 0 {
		matcherOpts = append(matcherOpts, phonetic.WithPhoneticThreshold(cfg.Analysis.PhoneticThreshold))
	}
	if cfg.Analysis.FuzzyThreshold > 0 {
		matcherOpts = append(matcherOpts, phonetic.WithFuzzyThreshold(cfg.Analysis.FuzzyThreshold))
	}
	corrector := transcript.NewCorrector(phonetic.New(matcherOpts...), cfg.Analysis.PracticeWords)

	// ── Session processing ────────────────────────────────────────────────────
	var processorOpts []session.ProcessorOption
	if cfg.Session.ArchiveDir != "" {
		processorOpts = append(processorOpts, session.WithArchiveDir(cfg.Session.ArchiveDir))
	}
	processorOpts = append(processorOpts, session.WithProcessorMetrics(metrics))
	processor := session.NewProcessor(transcriber, corrector, eng, processorOpts...)

	// ── HTTP server ───────────────────────────────────────────────────────────
	healthHandler := health.New(health.Checker{
		Name: "stt",
		Check: func(ctx context.Context) error {
			_, err := transcriber.Transcribe(ctx, nil)
			return err
		},
	})

	serverOpts := []server.Option{
		server.WithHealth(healthHandler),
		server.WithMetrics(metrics),
	}
	if cfg.Session.MaxDurationSeconds > 0 {
		serverOpts = append(serverOpts, server.WithMaxSessionSeconds(cfg.Session.MaxDurationSeconds))
	}
	srv := server.New(eng, processor, sampleRate, serverOpts...)

	addr := cfg.Server.ListenAddr
	if addr == "" {
		addr = ":8080"
	}

	slog.Info("server ready — press Ctrl+C to shut down")
	if err := srv.Run(ctx, addr); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
