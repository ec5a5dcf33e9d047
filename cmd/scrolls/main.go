package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Socratescrolls/backend/internal/artifacts"
	"github.com/Socratescrolls/backend/internal/config"
	"github.com/Socratescrolls/backend/internal/history"
	"github.com/Socratescrolls/backend/internal/httpapi"
	"github.com/Socratescrolls/backend/internal/observability"
	"github.com/Socratescrolls/backend/internal/session"
	"github.com/Socratescrolls/backend/internal/tutor"
	"github.com/Socratescrolls/backend/internal/voice"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if strings.EqualFold(os.Getenv("APP_LOG_LEVEL"), "debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	turnStore, err := history.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("history store init failed")
	}
	defer turnStore.Close()

	adapter, err := tutor.NewAdapter(tutor.Config{
		Mode:    cfg.TutorProvider,
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("tutor adapter init failed")
	}

	synth := buildSynthesizer(cfg)

	audioStore, err := artifacts.NewFSStore(cfg.AudioDir)
	if err != nil {
		log.Fatal().Err(err).Msg("audio store init failed")
	}

	sessions := session.NewManager(cfg.SessionTTL)
	sessions.SetExpireHook(func(s *session.Session) {
		for _, name := range s.AudioFiles {
			if err := audioStore.Remove(ctx, name); err != nil {
				log.Warn().Err(err).Str("audio", name).Msg("failed to remove expired audio")
			}
		}
		metrics.SessionEvents.WithLabelValues("expired").Inc()
		metrics.ActiveSessions.Set(float64(sessions.ActiveCount()))
		log.Info().Str("object_id", s.ID).Msg("session expired")
	})

	api := httpapi.New(cfg, sessions, adapter, synth, audioStore, turnStore, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	sessions.StartJanitor(runCtx, cfg.JanitorInterval)

	go func() {
		log.Info().Str("addr", cfg.BindAddr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("shutdown signal received")

	runCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown failed")
		_ = httpServer.Close()
	}

	log.Info().Msg("shutdown complete")
}

func buildSynthesizer(cfg config.Config) voice.Synthesizer {
	mode := strings.ToLower(strings.TrimSpace(cfg.VoiceProvider))
	if mode == "" {
		mode = "auto"
	}

	tryElevenLabs := func() voice.Synthesizer {
		if strings.TrimSpace(cfg.ElevenLabsAPIKey) == "" {
			return nil
		}
		log.Info().Msg("voice provider: elevenlabs realtime")
		return voice.NewElevenLabsSynthesizer(voice.ElevenLabsConfig{
			APIKey:       cfg.ElevenLabsAPIKey,
			WSBaseURL:    cfg.ElevenLabsWSBaseURL,
			VoiceID:      cfg.ElevenLabsTTSVoice,
			ModelID:      cfg.ElevenLabsTTSModel,
			OutputFormat: cfg.ElevenLabsTTSOutputFormat,
		})
	}

	switch mode {
	case "elevenlabs":
		s := tryElevenLabs()
		if s == nil {
			log.Fatal().Msg("VOICE_PROVIDER=elevenlabs but ELEVENLABS_API_KEY is not set")
		}
		return s
	case "mock":
		log.Info().Msg("voice provider: mock")
		return voice.NewMockSynthesizer()
	case "auto":
		if s := tryElevenLabs(); s != nil {
			return s
		}
		log.Info().Msg("voice provider: mock (no elevenlabs key)")
		return voice.NewMockSynthesizer()
	default:
		log.Fatal().Str("provider", cfg.VoiceProvider).Msg("invalid VOICE_PROVIDER (expected auto|elevenlabs|mock)")
		return nil
	}
}
