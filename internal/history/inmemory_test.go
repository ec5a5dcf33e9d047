package history

import (
	"context"
	"fmt"
	"testing"
)

func TestInMemorySaveAndHistory(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := s.SaveTurn(ctx, TurnRecord{
			SessionID: "sess-1",
			Role:      RoleStudent,
			Page:      i + 1,
			Content:   fmt.Sprintf("turn %d", i),
		})
		if err != nil {
			t.Fatalf("SaveTurn() error = %v", err)
		}
	}

	got, err := s.History(ctx, "sess-1", 3)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(History) = %d, want 3", len(got))
	}
	// Most recent three, in chronological order.
	for i, want := range []string{"turn 2", "turn 3", "turn 4"} {
		if got[i].Content != want {
			t.Fatalf("History[%d].Content = %q, want %q", i, got[i].Content, want)
		}
	}
	if got[0].ID == "" {
		t.Fatalf("SaveTurn() did not assign an id")
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatalf("SaveTurn() did not assign a timestamp")
	}
}

func TestInMemoryHistoryIsolatesSessions(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	_ = s.SaveTurn(ctx, TurnRecord{SessionID: "a", Role: RoleProfessor, Content: "hello a"})
	_ = s.SaveTurn(ctx, TurnRecord{SessionID: "b", Role: RoleProfessor, Content: "hello b"})

	got, err := s.History(ctx, "a", 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 1 || got[0].Content != "hello a" {
		t.Fatalf("History(a) = %+v, want only session a turns", got)
	}

	empty, err := s.History(ctx, "missing", 10)
	if err != nil {
		t.Fatalf("History(missing) error = %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("History(missing) = %+v, want empty", empty)
	}
}
