package tutor

import "strings"

// Recommended actions the teaching agent can take after assessing a reply.
const (
	ActionStay   = "stay"
	ActionNext   = "next"
	ActionFinish = "finish"
)

// Understanding levels reported by the agent.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Turn is one prior conversation entry passed back to the agent as context.
type Turn struct {
	Role    string `json:"role"`
	Page    int    `json:"page"`
	Content string `json:"content"`
}

// ExplainRequest asks the agent to teach one page of the document.
type ExplainRequest struct {
	SessionID   string
	Professor   ProfessorProfile
	PageNumber  int
	NumPages    int
	PageContent string
	History     []Turn
}

// ExplainResponse is the agent's explanation of a page.
type ExplainResponse struct {
	Message              string   `json:"message"`
	KeyPoints            []string `json:"key_points"`
	VerificationQuestion string   `json:"verification_question"`
}

// Assessment is the agent's structured judgment of student comprehension.
type Assessment struct {
	Level          string   `json:"level"`
	Feedback       string   `json:"feedback"`
	AreasToImprove []string `json:"areas_to_improve"`
}

// AssessRequest forwards a student reply for evaluation.
type AssessRequest struct {
	SessionID   string
	Professor   ProfessorProfile
	PageNumber  int
	NumPages    int
	PageContent string
	UserMessage string
	History     []Turn
}

// AssessResponse carries the agent's reply, its assessment, and its page
// advancement decision.
type AssessResponse struct {
	Message    string     `json:"message"`
	Assessment Assessment `json:"understanding_assessment"`
	Action     string     `json:"recommended_action"`
	Reasoning  string     `json:"reasoning"`
}

// NormalizeAction maps free-form agent output onto the known action set,
// defaulting to stay.
func NormalizeAction(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case ActionNext, "advance", "move", "move_on":
		return ActionNext
	case ActionFinish, "end", "complete", "done":
		return ActionFinish
	default:
		return ActionStay
	}
}

// NormalizeLevel maps free-form agent output onto low/medium/high, defaulting
// to medium.
func NormalizeLevel(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case LevelLow:
		return LevelLow
	case LevelHigh:
		return LevelHigh
	default:
		return LevelMedium
	}
}
