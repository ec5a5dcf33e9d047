package tutor

import (
	"context"
	"strings"
	"testing"
)

func TestProfessorsOrderAndDefault(t *testing.T) {
	names := Professors()
	want := []string{"Andrew NG", "David Malan", "John Guttag"}
	if len(names) != len(want) {
		t.Fatalf("Professors() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Professors()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if DefaultProfessor() != "Andrew NG" {
		t.Fatalf("DefaultProfessor() = %q, want Andrew NG", DefaultProfessor())
	}
	if _, ok := ProfileFor("Socrates"); ok {
		t.Fatalf("ProfileFor(unknown) ok, want false")
	}
}

func TestNormalizeAction(t *testing.T) {
	cases := map[string]string{
		"stay":     ActionStay,
		"NEXT":     ActionNext,
		"advance":  ActionNext,
		" finish ": ActionFinish,
		"done":     ActionFinish,
		"gibber":   ActionStay,
		"":         ActionStay,
	}
	for in, want := range cases {
		if got := NormalizeAction(in); got != want {
			t.Fatalf("NormalizeAction(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]string{
		"low":    LevelLow,
		"HIGH":   LevelHigh,
		"medium": LevelMedium,
		"huh":    LevelMedium,
	}
	for in, want := range cases {
		if got := NormalizeLevel(in); got != want {
			t.Fatalf("NormalizeLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeAgentJSONToleratesFences(t *testing.T) {
	raw := "```json\n{\"message\": \"hello\", \"recommended_action\": \"next\", \"understanding_assessment\": {\"level\": \"high\", \"feedback\": \"good\", \"areas_to_improve\": [\"depth\"]}, \"reasoning\": \"ready\"}\n```"

	var out AssessResponse
	if err := decodeAgentJSON(raw, &out); err != nil {
		t.Fatalf("decodeAgentJSON() error = %v", err)
	}
	if out.Message != "hello" || out.Action != "next" {
		t.Fatalf("decoded = %+v", out)
	}
	if out.Assessment.Level != "high" || len(out.Assessment.AreasToImprove) != 1 {
		t.Fatalf("assessment = %+v", out.Assessment)
	}
}

func TestDecodeAgentJSONRejectsGarbage(t *testing.T) {
	var out ExplainResponse
	if err := decodeAgentJSON("not json at all", &out); err == nil {
		t.Fatalf("decodeAgentJSON() on garbage succeeded, want error")
	}
	if err := decodeAgentJSON("", &out); err == nil {
		t.Fatalf("decodeAgentJSON() on empty succeeded, want error")
	}
}

func TestMockExplain(t *testing.T) {
	profile, _ := ProfileFor("David Malan")
	adapter := NewMockAdapter()

	resp, err := adapter.Explain(context.Background(), ExplainRequest{
		Professor:   profile,
		PageNumber:  1,
		NumPages:    3,
		PageContent: "Linear regression fits a line to data.",
	})
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if !strings.Contains(resp.Message, "David Malan") {
		t.Fatalf("Explain() message = %q, want persona name", resp.Message)
	}
	if resp.VerificationQuestion == "" {
		t.Fatalf("Explain() missing verification question")
	}
}

func TestMockAssessActions(t *testing.T) {
	adapter := NewMockAdapter()
	cases := []struct {
		message string
		action  string
	}{
		{"I think I got it, next please", ActionNext},
		{"I'm done, let's finish", ActionFinish},
		{"I am confused about residuals", ActionStay},
		{"tell me more", ActionStay},
	}
	for _, tc := range cases {
		resp, err := adapter.Assess(context.Background(), AssessRequest{
			PageNumber:  2,
			NumPages:    5,
			PageContent: "content",
			UserMessage: tc.message,
		})
		if err != nil {
			t.Fatalf("Assess(%q) error = %v", tc.message, err)
		}
		if resp.Action != tc.action {
			t.Fatalf("Assess(%q) action = %q, want %q", tc.message, resp.Action, tc.action)
		}
		if resp.Assessment.Level == "" || resp.Message == "" {
			t.Fatalf("Assess(%q) = %+v, incomplete response", tc.message, resp)
		}
	}
}

func TestNewAdapterModes(t *testing.T) {
	if _, err := NewAdapter(Config{Mode: "openai"}); err == nil {
		t.Fatalf("NewAdapter(openai) without key succeeded, want error")
	}
	if _, err := NewAdapter(Config{Mode: "banana"}); err == nil {
		t.Fatalf("NewAdapter(banana) succeeded, want error")
	}
	a, err := NewAdapter(Config{Mode: "auto"})
	if err != nil {
		t.Fatalf("NewAdapter(auto) error = %v", err)
	}
	if _, ok := a.(*MockAdapter); !ok {
		t.Fatalf("NewAdapter(auto) without key = %T, want *MockAdapter", a)
	}
}
