package tutor

import (
	"context"
	"fmt"
	"strings"
)

// MockAdapter provides deterministic local replies when no LLM key is
// configured. The advancement decision follows keywords in the student
// message so the full session flow stays exercisable offline.
type MockAdapter struct{}

func NewMockAdapter() *MockAdapter { return &MockAdapter{} }

func (a *MockAdapter) Explain(ctx context.Context, req ExplainRequest) (ExplainResponse, error) {
	select {
	case <-ctx.Done():
		return ExplainResponse{}, ctx.Err()
	default:
	}

	snippet := strings.TrimSpace(req.PageContent)
	if runes := []rune(snippet); len(runes) > 80 {
		snippet = string(runes[:80])
	}
	if snippet == "" {
		snippet = "this page"
	}

	return ExplainResponse{
		Message:              fmt.Sprintf("Professor %s here. On page %d of %d we cover: %s", req.Professor.Name, req.PageNumber, req.NumPages, snippet),
		KeyPoints:            []string{"main idea of the page", "how it connects to the previous page"},
		VerificationQuestion: "Can you explain this back in your own words?",
	}, nil
}

func (a *MockAdapter) Assess(ctx context.Context, req AssessRequest) (AssessResponse, error) {
	select {
	case <-ctx.Done():
		return AssessResponse{}, ctx.Err()
	default:
	}

	msg := strings.ToLower(req.UserMessage)
	action := ActionStay
	level := LevelMedium
	switch {
	case strings.Contains(msg, "finish") || strings.Contains(msg, "done"):
		action = ActionFinish
		level = LevelHigh
	case strings.Contains(msg, "next") || strings.Contains(msg, "got it"):
		action = ActionNext
		level = LevelHigh
	case strings.Contains(msg, "confused") || strings.Contains(msg, "lost"):
		level = LevelLow
	}

	return AssessResponse{
		Message:    fmt.Sprintf("Thanks. Staying with you on page %d: %s", req.PageNumber, strings.TrimSpace(req.UserMessage)),
		Assessment: Assessment{Level: level, Feedback: "Mock assessment of your reply.", AreasToImprove: []string{"none identified"}},
		Action:     action,
		Reasoning:  "mock decision from message keywords",
	}, nil
}

// Quiz builds a fixed three-question quiz; the correct answer is always "a"
// so flows that grade submissions stay testable offline.
func (a *MockAdapter) Quiz(ctx context.Context, req QuizRequest) (Quiz, error) {
	select {
	case <-ctx.Done():
		return Quiz{}, ctx.Err()
	default:
	}

	questions := make([]QuizQuestion, 0, 3)
	for i := 1; i <= 3; i++ {
		questions = append(questions, QuizQuestion{
			ID:       fmt.Sprintf("q%d", i),
			Question: fmt.Sprintf("Question %d about page %d", i, req.PageNumber),
			Options: []QuizOption{
				{ID: "a", Text: "The correct statement"},
				{ID: "b", Text: "A plausible distractor"},
				{ID: "c", Text: "An unrelated statement"},
				{ID: "d", Text: "A common misconception"},
			},
			CorrectAnswer: "a",
			Explanation:   fmt.Sprintf("Option a restates the key idea of page %d.", req.PageNumber),
		})
	}
	return Quiz{
		Title:     fmt.Sprintf("Page %d Concept Quiz", req.PageNumber),
		Questions: questions,
	}, nil
}

func (a *MockAdapter) Audit(ctx context.Context, req AuditRequest) (AuditResponse, error) {
	select {
	case <-ctx.Done():
		return AuditResponse{}, ctx.Err()
	default:
	}

	return AuditResponse{
		Engagement: EngagementMetrics{
			ParticipationRate:       80,
			ResponseQuality:         75,
			QuestionAskingFrequency: 60,
		},
		Progression: UnderstandingProgression{
			InitialLevel:     40,
			FinalLevel:       80,
			KeyImprovements:  []string{"explains concepts in own words"},
			ChallengingAreas: []string{"edge cases"},
		},
		Patterns: LearningPatterns{
			PreferredLearningStyle: "worked examples",
			MostEffectiveTopics:    []string{"fundamentals"},
			AttentionSpan:          "steady",
		},
		Recommendations: AuditRecommendations{
			KeyStrengths:        []string{"asks clarifying questions"},
			ImprovementAreas:    []string{"practice with harder examples"},
			ActionItems:         []string{"review the final pages once more"},
			AdditionalResources: []string{"course exercises"},
		},
	}, nil
}
