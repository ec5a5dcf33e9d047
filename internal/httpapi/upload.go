package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Socratescrolls/backend/internal/artifacts"
	"github.com/Socratescrolls/backend/internal/extract"
	"github.com/Socratescrolls/backend/internal/history"
	"github.com/Socratescrolls/backend/internal/tutor"
)

type uploadResponse struct {
	ObjectID    string `json:"object_id"`
	Message     string `json:"message"`
	AudioURL    string `json:"audio_url"`
	NumPages    int    `json:"num_pages"`
	CurrentPage int    `json:"current_page"`
	Professor   string `json:"professor_name"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "expected multipart form data: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "field 'file' is required")
		return
	}
	defer file.Close()

	startPage := 1
	if v := strings.TrimSpace(r.FormValue("start_page")); v != "" {
		startPage, err = strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "start_page must be an integer")
			return
		}
	}

	professorName := strings.TrimSpace(r.FormValue("professor_name"))
	if professorName == "" {
		professorName = tutor.DefaultProfessor()
	}
	profile, ok := tutor.ProfileFor(professorName)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown professor %q", professorName))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	doc, err := extract.Extract(header.Filename, data)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type; supported: %s", strings.Join(extract.SupportedExtensions(), ", ")))
			return
		}
		log.Error().Err(err).Str("filename", header.Filename).Msg("document extraction failed")
		respondError(w, http.StatusInternalServerError, "failed to process document")
		return
	}

	if startPage < 1 || startPage > doc.NumPages {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("start_page %d outside valid range [1, %d]", startPage, doc.NumPages))
		return
	}
	startContent := strings.TrimSpace(doc.Pages[startPage-1].Content)
	if startContent == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("page %d has no extractable text", startPage))
		return
	}

	sess := s.sessions.Create(header.Filename, strings.ToLower(filepath.Ext(header.Filename)), professorName, doc.Pages, startPage)
	s.metrics.SessionEvents.WithLabelValues("created").Inc()
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	s.metrics.DocumentPages.Observe(float64(doc.NumPages))

	explained, err := s.tutor.Explain(r.Context(), tutor.ExplainRequest{
		SessionID:   sess.ID,
		Professor:   profile,
		PageNumber:  startPage,
		NumPages:    doc.NumPages,
		PageContent: startContent,
	})
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("tutor", "explain").Inc()
		log.Error().Err(err).Str("object_id", sess.ID).Msg("initial explanation failed")
		respondError(w, http.StatusInternalServerError, "failed to generate professor response")
		return
	}

	if err := s.turns.SaveTurn(r.Context(), history.TurnRecord{
		SessionID: sess.ID,
		Role:      history.RoleProfessor,
		Page:      startPage,
		Content:   explained.Message,
	}); err != nil {
		log.Warn().Err(err).Str("object_id", sess.ID).Msg("failed to record professor turn")
	}

	audioURL := s.synthesizeAudio(r, sess.ID, explained.Message)

	respondJSON(w, http.StatusOK, uploadResponse{
		ObjectID:    sess.ID,
		Message:     explained.Message,
		AudioURL:    audioURL,
		NumPages:    doc.NumPages,
		CurrentPage: startPage,
		Professor:   professorName,
	})
}

// synthesizeAudio converts a professor message to a stored artifact and
// returns its retrieval URL. Synthesis failures degrade to an empty URL
// rather than failing the whole request.
func (s *Server) synthesizeAudio(r *http.Request, sessionID, text string) string {
	start := time.Now()
	data, format, err := s.synth.Synthesize(r.Context(), text)
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("voice", "synthesize").Inc()
		log.Warn().Err(err).Str("object_id", sessionID).Msg("audio synthesis failed")
		return ""
	}
	s.metrics.ObserveSynthesisLatency(time.Since(start))

	name := artifacts.NewFilename(format)
	if err := s.audio.Save(r.Context(), name, data); err != nil {
		log.Warn().Err(err).Str("object_id", sessionID).Msg("failed to store audio artifact")
		return ""
	}
	_ = s.sessions.AttachAudio(sessionID, name)
	return "/audio/" + name
}
