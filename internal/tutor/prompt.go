package tutor

import (
	"encoding/json"
	"fmt"
	"strings"
)

func systemPrompt(p ProfessorProfile, history []Turn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are Professor %s.\n", p.Name)
	fmt.Fprintf(&b, "Teaching Style: %s\n", p.Style)
	fmt.Fprintf(&b, "Background: %s\n", p.Background)
	fmt.Fprintf(&b, "Verification Style: %s\n", p.VerificationStyle)
	b.WriteString("\nConversation History:\n")
	if len(history) == 0 {
		b.WriteString("(none yet)\n")
	}
	for _, t := range history {
		fmt.Fprintf(&b, "Page %d - %s: %s\n", t.Page, t.Role, t.Content)
	}
	b.WriteString("\nAlways respond with a single JSON object and nothing else.")
	return b.String()
}

func explainPrompt(req ExplainRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current slide (Page %d of %d):\n%s\n\n", req.PageNumber, req.NumPages, req.PageContent)
	b.WriteString(`Teach this page in your style. Avoid repeating earlier explanations; if the history already covers this page, take a substantially different angle.

Respond with this exact structure:
{
  "message": "detailed explanation in your teaching style, ending with a question to check understanding",
  "key_points": ["point 1", "point 2"],
  "verification_question": "question to check understanding"
}`)
	return b.String()
}

func assessPrompt(req AssessRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current slide (Page %d of %d):\n%s\n\n", req.PageNumber, req.NumPages, req.PageContent)
	fmt.Fprintf(&b, "Student Response:\n%s\n\n", req.UserMessage)
	b.WriteString(`Evaluate the student's understanding of this page. Decide whether to stay on this page, move to the next page, or finish the session because the material is exhausted and understood.

Respond with this exact structure:
{
  "message": "your reply to the student in your teaching style",
  "understanding_assessment": {
    "level": "low/medium/high",
    "feedback": "detailed explanation of the student's understanding",
    "areas_to_improve": ["area 1", "area 2"]
  },
  "recommended_action": "stay/next/finish",
  "reasoning": "explanation of why to stay, advance, or finish"
}`)
	return b.String()
}

func quizSystemPrompt() string {
	return `You are an AI Teaching Assistant creating a Multiple Choice Quiz.

Generate a quiz that:
1. Covers the key concepts in the slide content
2. Has 5 multiple-choice questions
3. Includes varied difficulty levels
4. Provides correct answers and explanations

Ensure the quiz is educational and helps reinforce learning.
Always respond with a single JSON object and nothing else.`
}

func quizPrompt(req QuizRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Slide Content (Page %d of %d):\n%s\n\n", req.PageNumber, req.NumPages, req.PageContent)
	b.WriteString(`Respond with this exact structure:
{
  "quiz_title": "Quiz Title",
  "questions": [
    {
      "id": "q1",
      "question": "Question text",
      "options": [
        {"id": "a", "text": "Option A"},
        {"id": "b", "text": "Option B"},
        {"id": "c", "text": "Option C"},
        {"id": "d", "text": "Option D"}
      ],
      "correct_answer": "a/b/c/d",
      "explanation": "Detailed explanation of the correct answer"
    }
  ]
}`)
	return b.String()
}

func auditSystemPrompt() string {
	return `You are an expert Course Auditor.
Analyze the entire conversation history to:
1. Evaluate student engagement and participation
2. Assess concept understanding progression
3. Identify strengths and areas for improvement
4. Provide specific, actionable recommendations

Score engagement and understanding on a 0-100 scale.
Always respond with a single JSON object and nothing else.`
}

func auditPrompt(req AuditRequest) string {
	var b strings.Builder
	b.WriteString("Conversation History:\n")
	for _, t := range req.History {
		fmt.Fprintf(&b, "Page %d - %s: %s\n", t.Page, t.Role, t.Content)
	}
	b.WriteString(`
Provide a detailed analysis following this structure:
{
  "engagement_metrics": {
    "participation_rate": float,
    "response_quality": float,
    "question_asking_frequency": float
  },
  "understanding_progression": {
    "initial_level": float,
    "final_level": float,
    "key_improvements": [str],
    "challenging_areas": [str]
  },
  "learning_patterns": {
    "preferred_learning_style": str,
    "most_effective_topics": [str],
    "attention_span": str
  },
  "recommendations": {
    "key_strengths": [str],
    "improvement_areas": [str],
    "action_items": [str],
    "additional_resources": [str]
  }
}`)
	return b.String()
}

// decodeAgentJSON unmarshals an LLM reply into out, tolerating code fences
// and stray prose around the JSON object.
func decodeAgentJSON(raw string, out any) error {
	s := strings.TrimSpace(raw)
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	if s == "" {
		return fmt.Errorf("empty agent response")
	}
	if err := json.Unmarshal([]byte(s), out); err != nil {
		return fmt.Errorf("decode agent response: %w", err)
	}
	return nil
}
