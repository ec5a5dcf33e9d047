package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Socratescrolls/backend/internal/artifacts"
	"github.com/Socratescrolls/backend/internal/config"
	"github.com/Socratescrolls/backend/internal/history"
	"github.com/Socratescrolls/backend/internal/observability"
	"github.com/Socratescrolls/backend/internal/session"
	"github.com/Socratescrolls/backend/internal/tutor"
	"github.com/Socratescrolls/backend/internal/voice"
)

type Server struct {
	cfg      config.Config
	sessions *session.Manager
	tutor    tutor.Adapter
	synth    voice.Synthesizer
	audio    artifacts.Store
	turns    history.Store
	metrics  *observability.Metrics
}

func New(cfg config.Config, sessions *session.Manager, adapter tutor.Adapter, synth voice.Synthesizer, audio artifacts.Store, turns history.Store, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		tutor:    adapter,
		synth:    synth,
		audio:    audio,
		turns:    turns,
		metrics:  metrics,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(CORS(s.cfg.CORSOrigins))
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Get("/professors", s.handleListProfessors)
	r.Post("/upload", s.handleUpload)
	r.Post("/chat", s.handleChat)
	r.Post("/quiz", s.handleCreateQuiz)
	r.Post("/quiz/submit", s.handleSubmitQuiz)
	r.Get("/report/{object_id}", s.handleGetReport)
	r.Get("/audio/{audio_filename}", s.handleGetAudio)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ready",
		"active_sessions": s.sessions.ActiveCount(),
	})
}

func (s *Server) handleListProfessors(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, tutor.Professors())
}

func (s *Server) handleGetAudio(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "audio_filename")
	data, err := s.audio.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, artifacts.ErrNotFound) || errors.Is(err, artifacts.ErrInvalidName) {
			respondError(w, http.StatusNotFound, "audio file not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to read audio file")
		return
	}

	w.Header().Set("Content-Type", artifacts.ContentTypeFor(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// errorResponse matches the documented error shape: a single detail field.
type errorResponse struct {
	Detail string `json:"detail"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}
