package tutor

import (
	"context"
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

func sampleQuiz(n int) Quiz {
	questions := make([]QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, QuizQuestion{
			ID:            string(rune('a' + i)),
			Question:      "which option is right?",
			Options:       []QuizOption{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
			CorrectAnswer: "a",
			Explanation:   "a is right",
		})
	}
	return Quiz{Title: "sample", Questions: questions}
}

func TestEvaluateQuizScoring(t *testing.T) {
	quiz := sampleQuiz(4)

	cases := []struct {
		name      string
		answers   map[string]string
		correct   int
		wantLevel string
	}{
		{"all correct", map[string]string{"a": "a", "b": "a", "c": "a", "d": "a"}, 4, "Excellent"},
		{"three of four", map[string]string{"a": "a", "b": "a", "c": "a", "d": "b"}, 3, "Good"},
		{"half", map[string]string{"a": "a", "b": "a"}, 2, "Needs Improvement"},
		{"none", map[string]string{}, 0, "Needs Improvement"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := EvaluateQuiz(quiz, tc.answers)
			if err != nil {
				t.Fatalf("EvaluateQuiz() error = %v", err)
			}
			if result.CorrectAnswers != tc.correct {
				t.Fatalf("CorrectAnswers = %d, want %d", result.CorrectAnswers, tc.correct)
			}
			if result.TotalQuestions != 4 {
				t.Fatalf("TotalQuestions = %d, want 4", result.TotalQuestions)
			}
			wantScore := float64(tc.correct) / 4 * 100
			if math.Abs(result.ScorePercentage-wantScore) > 1e-9 {
				t.Fatalf("ScorePercentage = %v, want %v", result.ScorePercentage, wantScore)
			}
			if result.PerformanceLevel != tc.wantLevel {
				t.Fatalf("PerformanceLevel = %q, want %q", result.PerformanceLevel, tc.wantLevel)
			}
			if result.RecommendationForProfessor == "" {
				t.Fatalf("missing recommendation")
			}
			if len(result.DetailedResults) != 4 {
				t.Fatalf("DetailedResults = %d entries, want 4", len(result.DetailedResults))
			}
		})
	}
}

func TestEvaluateQuizEmpty(t *testing.T) {
	if _, err := EvaluateQuiz(Quiz{}, map[string]string{"q1": "a"}); err == nil {
		t.Fatalf("EvaluateQuiz() on empty quiz succeeded, want error")
	}
}

func TestQuizPerformanceLevelBoundaries(t *testing.T) {
	cases := map[float64]string{
		100: "Excellent",
		90:  "Excellent",
		75:  "Good",
		60:  "Satisfactory",
		59:  "Needs Improvement",
		0:   "Needs Improvement",
	}
	for score, want := range cases {
		if got := quizPerformanceLevel(score); got != want {
			t.Fatalf("quizPerformanceLevel(%v) = %q, want %q", score, got, want)
		}
	}
}

func TestBuildReport(t *testing.T) {
	analysis := AuditResponse{
		Engagement:  EngagementMetrics{ParticipationRate: 80, ResponseQuality: 75, QuestionAskingFrequency: 60},
		Progression: UnderstandingProgression{InitialLevel: 40, FinalLevel: 80},
		Patterns:    LearningPatterns{PreferredLearningStyle: "worked examples"},
	}
	quizResults := []QuizResult{{ScorePercentage: 100}}

	report := BuildReport(analysis, quizResults)

	// engagement 74, understanding 100, progress 87, quiz 100
	if math.Abs(report.Metrics.EngagementQuality-74) > 1e-9 {
		t.Fatalf("EngagementQuality = %v, want 74", report.Metrics.EngagementQuality)
	}
	if math.Abs(report.Metrics.ConceptUnderstanding-100) > 1e-9 {
		t.Fatalf("ConceptUnderstanding = %v, want 100", report.Metrics.ConceptUnderstanding)
	}
	if math.Abs(report.Metrics.ProgressRate-87) > 1e-9 {
		t.Fatalf("ProgressRate = %v, want 87", report.Metrics.ProgressRate)
	}
	if math.Abs(report.TotalScore-91.55) > 1e-9 {
		t.Fatalf("TotalScore = %v, want 91.55", report.TotalScore)
	}
	if report.PerformanceLevel != "Outstanding" {
		t.Fatalf("PerformanceLevel = %q, want Outstanding", report.PerformanceLevel)
	}
	if report.GeneratedAt.IsZero() {
		t.Fatalf("GeneratedAt not set")
	}
	if report.LearningProfile.PreferredLearningStyle != "worked examples" {
		t.Fatalf("LearningProfile = %+v", report.LearningProfile)
	}
}

func TestBuildReportWithoutQuizzes(t *testing.T) {
	analysis := AuditResponse{
		Engagement:  EngagementMetrics{ParticipationRate: 80, ResponseQuality: 75, QuestionAskingFrequency: 60},
		Progression: UnderstandingProgression{InitialLevel: 40, FinalLevel: 80},
	}

	report := BuildReport(analysis, nil)
	if report.Metrics.QuizPerformance != 0 {
		t.Fatalf("QuizPerformance = %v, want 0", report.Metrics.QuizPerformance)
	}
	// 74*0.25 + 100*0.25 + 87*0.15 = 56.55
	if math.Abs(report.TotalScore-56.55) > 1e-9 {
		t.Fatalf("TotalScore = %v, want 56.55", report.TotalScore)
	}
	if report.PerformanceLevel != "Needs Improvement" {
		t.Fatalf("PerformanceLevel = %q, want Needs Improvement", report.PerformanceLevel)
	}
}

func TestMockQuizIsGradable(t *testing.T) {
	adapter := NewMockAdapter()
	quiz, err := adapter.Quiz(context.Background(), QuizRequest{PageNumber: 2, NumPages: 5, PageContent: "content"})
	if err != nil {
		t.Fatalf("Quiz() error = %v", err)
	}
	if len(quiz.Questions) == 0 {
		t.Fatalf("Quiz() returned no questions")
	}

	answers := map[string]string{}
	for _, q := range quiz.Questions {
		if len(q.Options) != 4 || q.CorrectAnswer == "" {
			t.Fatalf("question %s incomplete: %+v", q.ID, q)
		}
		answers[q.ID] = q.CorrectAnswer
	}

	result, err := EvaluateQuiz(quiz, answers)
	if err != nil {
		t.Fatalf("EvaluateQuiz() error = %v", err)
	}
	if result.ScorePercentage != 100 || result.PerformanceLevel != "Excellent" {
		t.Fatalf("perfect submission scored %v (%s)", result.ScorePercentage, result.PerformanceLevel)
	}
}

func TestMockAuditReportsProgress(t *testing.T) {
	adapter := NewMockAdapter()
	analysis, err := adapter.Audit(context.Background(), AuditRequest{SessionID: "s", History: []Turn{{Role: "student", Page: 1, Content: "hi"}}})
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if analysis.Progression.FinalLevel <= analysis.Progression.InitialLevel {
		t.Fatalf("Progression = %+v, want improvement", analysis.Progression)
	}
	if analysis.Patterns.PreferredLearningStyle == "" {
		t.Fatalf("missing learning patterns: %+v", analysis.Patterns)
	}
}

func TestMockExplainTruncatesOnRuneBoundary(t *testing.T) {
	adapter := NewMockAdapter()
	resp, err := adapter.Explain(context.Background(), ExplainRequest{
		Professor:   professorProfiles[0],
		PageNumber:  1,
		NumPages:    1,
		PageContent: strings.Repeat("数学", 100),
	})
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if !utf8.ValidString(resp.Message) {
		t.Fatalf("Explain() produced invalid UTF-8: %q", resp.Message)
	}
}
