package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Socratescrolls/backend/internal/history"
	"github.com/Socratescrolls/backend/internal/session"
	"github.com/Socratescrolls/backend/internal/tutor"
)

// CurrentPage is a pointer so a missing field is distinguishable from an
// explicit page 0: the former is a schema error, the latter out of range.
type chatRequest struct {
	ObjectID    string `json:"object_id"`
	Message     string `json:"message"`
	CurrentPage *int   `json:"current_page"`
}

type chatResponse struct {
	ObjectID          string           `json:"object_id"`
	Message           string           `json:"message"`
	CurrentPage       int              `json:"current_page"`
	Assessment        tutor.Assessment `json:"understanding_assessment"`
	AudioURL          string           `json:"audio_url"`
	EndOfConversation bool             `json:"end_of_conversation"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.ObjectID) == "" {
		respondError(w, http.StatusUnprocessableEntity, "object_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusUnprocessableEntity, "message is required")
		return
	}
	if req.CurrentPage == nil {
		respondError(w, http.StatusUnprocessableEntity, "current_page is required")
		return
	}
	currentPage := *req.CurrentPage

	// Chat turns against one session run one at a time, in arrival order.
	release, err := s.sessions.LockTurn(req.ObjectID)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("session %s not found", req.ObjectID))
		return
	}
	defer release()

	sess, err := s.sessions.Get(req.ObjectID)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("session %s not found", req.ObjectID))
		return
	}
	if sess.Status == session.StatusCompleted {
		respondError(w, http.StatusBadRequest, "conversation has already ended")
		return
	}

	if currentPage < 1 || currentPage > sess.NumPages {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("current_page %d outside valid range [1, %d]", currentPage, sess.NumPages))
		return
	}
	pageContent, _ := sess.PageContent(currentPage)
	if strings.TrimSpace(pageContent) == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("page %d has no content", currentPage))
		return
	}

	profile, ok := tutor.ProfileFor(sess.Professor)
	if !ok {
		respondError(w, http.StatusInternalServerError, "session professor no longer available")
		return
	}

	prior, err := s.turns.History(r.Context(), sess.ID, s.cfg.HistoryLimit)
	if err != nil {
		log.Warn().Err(err).Str("object_id", sess.ID).Msg("failed to load history")
	}
	turns := make([]tutor.Turn, 0, len(prior))
	for _, t := range prior {
		turns = append(turns, tutor.Turn{Role: t.Role, Page: t.Page, Content: t.Content})
	}

	if err := s.turns.SaveTurn(r.Context(), history.TurnRecord{
		SessionID: sess.ID,
		Role:      history.RoleStudent,
		Page:      currentPage,
		Content:   req.Message,
	}); err != nil {
		log.Warn().Err(err).Str("object_id", sess.ID).Msg("failed to record student turn")
	}

	assessed, err := s.tutor.Assess(r.Context(), tutor.AssessRequest{
		SessionID:   sess.ID,
		Professor:   profile,
		PageNumber:  currentPage,
		NumPages:    sess.NumPages,
		PageContent: pageContent,
		UserMessage: req.Message,
		History:     turns,
	})
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("tutor", "assess").Inc()
		log.Error().Err(err).Str("object_id", sess.ID).Msg("assessment failed")
		respondError(w, http.StatusInternalServerError, "failed to generate professor response")
		return
	}

	action := tutor.NormalizeAction(assessed.Action)
	assessed.Assessment.Level = tutor.NormalizeLevel(assessed.Assessment.Level)
	s.metrics.ChatTurns.WithLabelValues(action).Inc()

	updatedPage := currentPage
	endOfConversation := false
	switch action {
	case tutor.ActionNext:
		// The agent advancing past the last page exhausts the material.
		if currentPage >= sess.NumPages {
			endOfConversation = true
		} else {
			updatedPage = currentPage + 1
			if err := s.sessions.Advance(sess.ID, updatedPage); err != nil {
				respondError(w, http.StatusNotFound, fmt.Sprintf("session %s not found", sess.ID))
				return
			}
		}
	case tutor.ActionFinish:
		endOfConversation = true
	default:
		_ = s.sessions.Advance(sess.ID, currentPage)
	}

	var audioURL string
	if endOfConversation {
		if _, err := s.sessions.Complete(sess.ID); err == nil {
			s.metrics.SessionEvents.WithLabelValues("completed").Inc()
			s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
		}
	} else {
		audioURL = s.synthesizeAudio(r, sess.ID, assessed.Message)
	}

	if err := s.turns.SaveTurn(r.Context(), history.TurnRecord{
		SessionID: sess.ID,
		Role:      history.RoleProfessor,
		Page:      updatedPage,
		Content:   assessed.Message,
		Level:     assessed.Assessment.Level,
	}); err != nil {
		log.Warn().Err(err).Str("object_id", sess.ID).Msg("failed to record professor turn")
	}

	respondJSON(w, http.StatusOK, chatResponse{
		ObjectID:          sess.ID,
		Message:           assessed.Message,
		CurrentPage:       updatedPage,
		Assessment:        assessed.Assessment,
		AudioURL:          audioURL,
		EndOfConversation: endOfConversation,
	})
}
