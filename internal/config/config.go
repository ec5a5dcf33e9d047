package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the professor backend.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	CORSOrigins []string

	MaxUploadBytes  int64
	SessionTTL      time.Duration
	JanitorInterval time.Duration

	TutorProvider string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	VoiceProvider             string
	ElevenLabsAPIKey          string
	ElevenLabsWSBaseURL       string
	ElevenLabsTTSVoice        string
	ElevenLabsTTSModel        string
	ElevenLabsTTSOutputFormat string

	AudioDir string

	DatabaseURL  string
	HistoryLimit int
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:            envOrDefault("APP_BIND_ADDR", ":8000"),
		MetricsNamespace:    envOrDefault("APP_METRICS_NAMESPACE", "scrolls"),
		CORSOrigins:         splitCSV(envOrDefault("APP_CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000,http://127.0.0.1:3000")),
		TutorProvider:       envOrDefault("TUTOR_PROVIDER", "auto"),
		OpenAIAPIKey:        envTrimmed("OPENAI_API_KEY"),
		OpenAIBaseURL:       envTrimmed("OPENAI_BASE_URL"),
		OpenAIModel:         envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		VoiceProvider:       envOrDefault("VOICE_PROVIDER", "auto"),
		ElevenLabsAPIKey:    envTrimmed("ELEVENLABS_API_KEY"),
		ElevenLabsWSBaseURL: envOrDefault("ELEVENLABS_WS_BASE_URL", "wss://api.elevenlabs.io"),
		// Default to a calm narration voice; any ElevenLabs voice id works here.
		ElevenLabsTTSVoice:        envOrDefault("ELEVENLABS_TTS_VOICE_ID", "cgSgspJ2msm6clMCkdW9"),
		ElevenLabsTTSModel:        envOrDefault("ELEVENLABS_TTS_MODEL_ID", "eleven_multilingual_v2"),
		ElevenLabsTTSOutputFormat: envOrDefault("ELEVENLABS_TTS_OUTPUT_FORMAT", "mp3_44100_128"),
		AudioDir:                  envOrDefault("APP_AUDIO_DIR", "audio_files"),
		DatabaseURL:               envTrimmed("DATABASE_URL"),
		MaxUploadBytes:            32 << 20,
		SessionTTL:                2 * time.Hour,
		JanitorInterval:           time.Minute,
		ShutdownTimeout:           15 * time.Second,
		HistoryLimit:              40,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL, err = durationFromEnv("APP_SESSION_TTL", cfg.SessionTTL)
	if err != nil {
		return Config{}, err
	}
	cfg.JanitorInterval, err = durationFromEnv("APP_JANITOR_INTERVAL", cfg.JanitorInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxUploadBytes, err = int64FromEnv("APP_MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	if err != nil {
		return Config{}, err
	}
	cfg.HistoryLimit, err = intFromEnv("APP_HISTORY_LIMIT", cfg.HistoryLimit)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionTTL < time.Minute {
		return Config{}, fmt.Errorf("APP_SESSION_TTL must be at least 1m")
	}
	if cfg.JanitorInterval <= 0 {
		return Config{}, fmt.Errorf("APP_JANITOR_INTERVAL must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("APP_MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.HistoryLimit <= 0 {
		return Config{}, fmt.Errorf("APP_HISTORY_LIMIT must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func int64FromEnv(key string, fallback int64) (int64, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}
