package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIAdapter drives an OpenAI-compatible chat model through langchaingo.
type OpenAIAdapter struct {
	llm   *openai.LLM
	model string
}

func NewOpenAIAdapter(cfg Config) (*OpenAIAdapter, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(strings.TrimSpace(cfg.APIKey), "Bearer ")),
		openai.WithModel(cfg.Model),
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	return &OpenAIAdapter{llm: llm, model: cfg.Model}, nil
}

const (
	explanationSimilarityThreshold = 0.8
	maxExplainAttempts             = 3
)

func (a *OpenAIAdapter) Explain(ctx context.Context, req ExplainRequest) (ExplainResponse, error) {
	prior := priorExplanations(req.History)
	system := systemPrompt(req.Professor, req.History)
	human := explainPrompt(req)

	var out ExplainResponse
	for attempt := 0; ; attempt++ {
		raw, err := a.generate(ctx, system, human)
		if err != nil {
			return ExplainResponse{}, err
		}
		out = ExplainResponse{}
		if err := decodeAgentJSON(raw, &out); err != nil {
			return ExplainResponse{}, err
		}
		if strings.TrimSpace(out.Message) == "" {
			return ExplainResponse{}, fmt.Errorf("agent explanation missing message")
		}
		if attempt >= maxExplainAttempts || !tooSimilar(out.Message, prior, explanationSimilarityThreshold) {
			break
		}
		// Too close to an earlier explanation; push the model off the beaten
		// path and try again.
		log.Debug().Str("session", req.SessionID).Int("attempt", attempt+1).Msg("regenerating similar explanation")
		system += "\nPrevious explanation was too similar. Generate a COMPLETELY DIFFERENT explanation."
	}
	return out, nil
}

// priorExplanations pulls the professor's earlier replies out of the history
// so new explanations can be checked for repetition.
func priorExplanations(history []Turn) []string {
	var out []string
	for _, t := range history {
		if strings.EqualFold(t.Role, "professor") && strings.TrimSpace(t.Content) != "" {
			out = append(out, t.Content)
		}
	}
	return out
}

func (a *OpenAIAdapter) Assess(ctx context.Context, req AssessRequest) (AssessResponse, error) {
	raw, err := a.generate(ctx, systemPrompt(req.Professor, req.History), assessPrompt(req))
	if err != nil {
		return AssessResponse{}, err
	}

	var out AssessResponse
	if err := decodeAgentJSON(raw, &out); err != nil {
		return AssessResponse{}, err
	}
	if strings.TrimSpace(out.Message) == "" {
		return AssessResponse{}, fmt.Errorf("agent assessment missing message")
	}
	out.Action = NormalizeAction(out.Action)
	out.Assessment.Level = NormalizeLevel(out.Assessment.Level)
	return out, nil
}

func (a *OpenAIAdapter) Quiz(ctx context.Context, req QuizRequest) (Quiz, error) {
	raw, err := a.generate(ctx, quizSystemPrompt(), quizPrompt(req))
	if err != nil {
		return Quiz{}, err
	}

	var out Quiz
	if err := decodeAgentJSON(raw, &out); err != nil {
		return Quiz{}, err
	}
	if len(out.Questions) == 0 {
		return Quiz{}, fmt.Errorf("agent quiz has no questions")
	}
	for i := range out.Questions {
		q := &out.Questions[i]
		q.CorrectAnswer = strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", i+1)
		}
		if len(q.Options) == 0 || q.CorrectAnswer == "" {
			return Quiz{}, fmt.Errorf("agent quiz question %s incomplete", q.ID)
		}
	}
	return out, nil
}

func (a *OpenAIAdapter) Audit(ctx context.Context, req AuditRequest) (AuditResponse, error) {
	raw, err := a.generate(ctx, auditSystemPrompt(), auditPrompt(req))
	if err != nil {
		return AuditResponse{}, err
	}

	var out AuditResponse
	if err := decodeAgentJSON(raw, &out); err != nil {
		return AuditResponse{}, err
	}
	return out, nil
}

func (a *OpenAIAdapter) generate(ctx context.Context, system, human string) (string, error) {
	log.Debug().Str("model", a.model).Int("system_len", len(system)).Int("human_len", len(human)).Msg("tutor request")

	resp, err := a.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, human),
		},
		llms.WithTemperature(0.7),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", fmt.Errorf("tutor generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("tutor generate: empty response")
	}
	return resp.Choices[0].Content, nil
}
