package tutor

import "fmt"

// QuizOption is one multiple-choice answer.
type QuizOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuizQuestion is one multiple-choice question with its answer key.
type QuizQuestion struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Options       []QuizOption `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
}

// Quiz is a generated multiple-choice quiz for one page.
type Quiz struct {
	Title     string         `json:"quiz_title"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizRequest asks the agent to build a quiz over the current page.
type QuizRequest struct {
	SessionID   string
	Professor   ProfessorProfile
	PageNumber  int
	NumPages    int
	PageContent string
	History     []Turn
}

// QuizAnswerResult grades one submitted answer.
type QuizAnswerResult struct {
	QuestionID    string `json:"question_id"`
	StudentAnswer string `json:"student_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// QuizResult summarizes a graded quiz submission.
type QuizResult struct {
	TotalQuestions             int                `json:"total_questions"`
	CorrectAnswers             int                `json:"correct_answers"`
	ScorePercentage            float64            `json:"score_percentage"`
	PerformanceLevel           string             `json:"performance_level"`
	DetailedResults            []QuizAnswerResult `json:"detailed_results"`
	RecommendationForProfessor string             `json:"recommendation_for_professor"`
}

// EvaluateQuiz grades the submitted answers against the quiz answer key.
// Grading is deterministic; the agent only generates the quiz.
func EvaluateQuiz(quiz Quiz, answers map[string]string) (QuizResult, error) {
	if len(quiz.Questions) == 0 {
		return QuizResult{}, fmt.Errorf("quiz has no questions")
	}

	correct := 0
	details := make([]QuizAnswerResult, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answer := answers[q.ID]
		isCorrect := answer != "" && answer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		details = append(details, QuizAnswerResult{
			QuestionID:    q.ID,
			StudentAnswer: answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	score := float64(correct) / float64(len(quiz.Questions)) * 100
	level := quizPerformanceLevel(score)
	return QuizResult{
		TotalQuestions:             len(quiz.Questions),
		CorrectAnswers:             correct,
		ScorePercentage:            score,
		PerformanceLevel:           level,
		DetailedResults:            details,
		RecommendationForProfessor: teachingRecommendation(level),
	}, nil
}

func quizPerformanceLevel(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Satisfactory"
	default:
		return "Needs Improvement"
	}
}

func teachingRecommendation(level string) string {
	switch level {
	case "Excellent":
		return "Student demonstrates high comprehension. Recommend introducing more advanced concepts and challenging examples."
	case "Good":
		return "Student shows solid understanding. Suggest providing more practical applications and real-world scenarios."
	case "Satisfactory":
		return "Student grasps basic concepts but needs more support. Recommend breaking down complex ideas, using more analogies, and providing additional explanations."
	case "Needs Improvement":
		return "Student struggles with fundamental concepts. Suggest returning to foundational material, using simpler explanations, and providing more step-by-step guidance."
	default:
		return "Unable to generate specific recommendation."
	}
}
