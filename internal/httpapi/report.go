package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Socratescrolls/backend/internal/tutor"
)

type reportResponse struct {
	ObjectID string `json:"object_id"`
	tutor.Report
}

// handleGetReport audits the whole session: the agent analyzes the
// transcript, and the graded quizzes feed the scored metrics.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	objectID := chi.URLParam(r, "object_id")

	sess, err := s.sessions.Get(objectID)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("session %s not found", objectID))
		return
	}

	prior, err := s.turns.History(r.Context(), sess.ID, s.cfg.HistoryLimit)
	if err != nil {
		log.Error().Err(err).Str("object_id", sess.ID).Msg("failed to load history for report")
		respondError(w, http.StatusInternalServerError, "failed to load conversation history")
		return
	}
	if len(prior) == 0 {
		respondError(w, http.StatusBadRequest, "no conversation history to audit")
		return
	}
	turns := make([]tutor.Turn, 0, len(prior))
	for _, t := range prior {
		turns = append(turns, tutor.Turn{Role: t.Role, Page: t.Page, Content: t.Content})
	}

	analysis, err := s.tutor.Audit(r.Context(), tutor.AuditRequest{SessionID: sess.ID, History: turns})
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("tutor", "audit").Inc()
		log.Error().Err(err).Str("object_id", sess.ID).Msg("session audit failed")
		respondError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	report := tutor.BuildReport(analysis, sess.QuizResults)
	s.metrics.ReportsGenerated.Inc()

	respondJSON(w, http.StatusOK, reportResponse{ObjectID: sess.ID, Report: report})
}
