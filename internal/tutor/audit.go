package tutor

import "time"

// AuditRequest asks the agent to analyze a full session transcript.
type AuditRequest struct {
	SessionID string
	History   []Turn
}

// EngagementMetrics scores student participation on a 0-100 scale.
type EngagementMetrics struct {
	ParticipationRate       float64 `json:"participation_rate"`
	ResponseQuality         float64 `json:"response_quality"`
	QuestionAskingFrequency float64 `json:"question_asking_frequency"`
}

// UnderstandingProgression tracks comprehension from the first turn to the last.
type UnderstandingProgression struct {
	InitialLevel     float64  `json:"initial_level"`
	FinalLevel       float64  `json:"final_level"`
	KeyImprovements  []string `json:"key_improvements"`
	ChallengingAreas []string `json:"challenging_areas"`
}

// LearningPatterns describes how the student learned best.
type LearningPatterns struct {
	PreferredLearningStyle string   `json:"preferred_learning_style"`
	MostEffectiveTopics    []string `json:"most_effective_topics"`
	AttentionSpan          string   `json:"attention_span"`
}

// AuditRecommendations carries the auditor's actionable advice.
type AuditRecommendations struct {
	KeyStrengths        []string `json:"key_strengths"`
	ImprovementAreas    []string `json:"improvement_areas"`
	ActionItems         []string `json:"action_items"`
	AdditionalResources []string `json:"additional_resources"`
}

// AuditResponse is the agent's qualitative analysis of the session.
type AuditResponse struct {
	Engagement      EngagementMetrics        `json:"engagement_metrics"`
	Progression     UnderstandingProgression `json:"understanding_progression"`
	Patterns        LearningPatterns         `json:"learning_patterns"`
	Recommendations AuditRecommendations     `json:"recommendations"`
}

// PerformanceMetrics are the computed component scores of the final report.
type PerformanceMetrics struct {
	QuizPerformance      float64 `json:"quiz_performance"`
	EngagementQuality    float64 `json:"engagement_quality"`
	ConceptUnderstanding float64 `json:"concept_understanding"`
	ProgressRate         float64 `json:"progress_rate"`
}

// Report is the final session audit combining the agent's analysis with
// deterministic scoring of quiz performance and progression.
type Report struct {
	GeneratedAt      time.Time                `json:"generated_at"`
	TotalScore       float64                  `json:"total_score"`
	PerformanceLevel string                   `json:"performance_level"`
	Metrics          PerformanceMetrics       `json:"performance_metrics"`
	LearningProfile  LearningPatterns         `json:"learning_profile"`
	Progress         UnderstandingProgression `json:"progress_analysis"`
	Recommendations  AuditRecommendations     `json:"recommendations"`
}

// Component weights of the total score.
const (
	weightQuizPerformance      = 0.35
	weightEngagementQuality    = 0.25
	weightConceptUnderstanding = 0.25
	weightProgressRate         = 0.15
)

// BuildReport computes the scored report from the agent's analysis and the
// session's graded quizzes. Scoring is deterministic; only the qualitative
// analysis comes from the agent.
func BuildReport(analysis AuditResponse, quizResults []QuizResult) Report {
	quizScore := 0.0
	if len(quizResults) > 0 {
		for _, r := range quizResults {
			quizScore += r.ScorePercentage
		}
		quizScore /= float64(len(quizResults))
	}

	engagement := analysis.Engagement.ParticipationRate*0.4 +
		analysis.Engagement.ResponseQuality*0.4 +
		analysis.Engagement.QuestionAskingFrequency*0.2

	understanding := 0.0
	if initial := analysis.Progression.InitialLevel; initial > 0 {
		denom := initial
		if denom < 1 {
			denom = 1
		}
		understanding = (analysis.Progression.FinalLevel - initial) / denom * 100
	}

	progress := (understanding + engagement) / 2

	total := quizScore*weightQuizPerformance +
		engagement*weightEngagementQuality +
		understanding*weightConceptUnderstanding +
		progress*weightProgressRate

	return Report{
		GeneratedAt:      time.Now().UTC(),
		TotalScore:       total,
		PerformanceLevel: reportPerformanceLevel(total),
		Metrics: PerformanceMetrics{
			QuizPerformance:      quizScore,
			EngagementQuality:    engagement,
			ConceptUnderstanding: understanding,
			ProgressRate:         progress,
		},
		LearningProfile: analysis.Patterns,
		Progress:        analysis.Progression,
		Recommendations: analysis.Recommendations,
	}
}

func reportPerformanceLevel(total float64) string {
	switch {
	case total >= 90:
		return "Outstanding"
	case total >= 80:
		return "Excellent"
	case total >= 70:
		return "Good"
	case total >= 60:
		return "Satisfactory"
	default:
		return "Needs Improvement"
	}
}
