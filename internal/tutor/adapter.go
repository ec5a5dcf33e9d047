package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Adapter is the black-box teaching collaborator. The service never reasons
// about pedagogy itself: explanations, assessments, and page advancement all
// come from the agent behind this interface.
type Adapter interface {
	Explain(ctx context.Context, req ExplainRequest) (ExplainResponse, error)
	Assess(ctx context.Context, req AssessRequest) (AssessResponse, error)
	Quiz(ctx context.Context, req QuizRequest) (Quiz, error)
	Audit(ctx context.Context, req AuditRequest) (AuditResponse, error)
}

// Config controls adapter construction.
type Config struct {
	Mode    string
	APIKey  string
	BaseURL string
	Model   string
}

func NewAdapter(cfg Config) (Adapter, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.APIKey) != "" {
			return NewOpenAIAdapter(cfg)
		}
		return NewMockAdapter(), nil
	case "openai":
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, errors.New("OPENAI_API_KEY is required for openai mode")
		}
		return NewOpenAIAdapter(cfg)
	case "mock":
		return NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unsupported tutor provider %q", cfg.Mode)
	}
}
