package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Socratescrolls/backend/internal/session"
	"github.com/Socratescrolls/backend/internal/tutor"
)

type quizRequest struct {
	ObjectID string `json:"object_id"`
}

// quizQuestionView is a question as shown to the student: no answer key.
type quizQuestionView struct {
	ID       string             `json:"id"`
	Question string             `json:"question"`
	Options  []tutor.QuizOption `json:"options"`
}

type quizResponse struct {
	ObjectID    string             `json:"object_id"`
	Title       string             `json:"quiz_title"`
	CurrentPage int                `json:"current_page"`
	Questions   []quizQuestionView `json:"questions"`
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.ObjectID) == "" {
		respondError(w, http.StatusUnprocessableEntity, "object_id is required")
		return
	}

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

	profile, ok := tutor.ProfileFor(sess.Professor)
	if !ok {
		respondError(w, http.StatusInternalServerError, "session professor no longer available")
		return
	}
	pageContent, _ := sess.PageContent(sess.CurrentPage)
	if strings.TrimSpace(pageContent) == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("page %d has no content", sess.CurrentPage))
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

	quiz, err := s.tutor.Quiz(r.Context(), tutor.QuizRequest{
		SessionID:   sess.ID,
		Professor:   profile,
		PageNumber:  sess.CurrentPage,
		NumPages:    sess.NumPages,
		PageContent: pageContent,
		History:     turns,
	})
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues("tutor", "quiz").Inc()
		log.Error().Err(err).Str("object_id", sess.ID).Msg("quiz generation failed")
		respondError(w, http.StatusInternalServerError, "failed to generate quiz")
		return
	}

	if err := s.sessions.SetQuiz(sess.ID, &quiz); err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("session %s not found", sess.ID))
		return
	}
	s.metrics.QuizEvents.WithLabelValues("generated").Inc()

	views := make([]quizQuestionView, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		views = append(views, quizQuestionView{ID: q.ID, Question: q.Question, Options: q.Options})
	}
	respondJSON(w, http.StatusOK, quizResponse{
		ObjectID:    sess.ID,
		Title:       quiz.Title,
		CurrentPage: sess.CurrentPage,
		Questions:   views,
	})
}

type quizSubmission struct {
	ObjectID string            `json:"object_id"`
	Answers  map[string]string `json:"answers"`
}

type quizResultResponse struct {
	ObjectID string `json:"object_id"`
	tutor.QuizResult
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizSubmission
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.ObjectID) == "" {
		respondError(w, http.StatusUnprocessableEntity, "object_id is required")
		return
	}
	if len(req.Answers) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "answers are required")
		return
	}

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
	if sess.PendingQuiz == nil {
		respondError(w, http.StatusBadRequest, "no active quiz for this session")
		return
	}

	answers := make(map[string]string, len(req.Answers))
	for id, choice := range req.Answers {
		answers[id] = strings.ToLower(strings.TrimSpace(choice))
	}

	result, err := tutor.EvaluateQuiz(*sess.PendingQuiz, answers)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to evaluate quiz")
		return
	}
	if err := s.sessions.RecordQuizResult(sess.ID, result); err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("session %s not found", sess.ID))
		return
	}
	s.metrics.QuizEvents.WithLabelValues("submitted").Inc()

	respondJSON(w, http.StatusOK, quizResultResponse{ObjectID: sess.ID, QuizResult: result})
}
