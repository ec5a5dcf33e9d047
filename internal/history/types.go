package history

import (
	"context"
	"time"
)

// Roles recorded for conversation turns.
const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
)

// TurnRecord stores a single student or professor conversational turn.
type TurnRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Page      int       `json:"page"`
	Content   string    `json:"content"`
	Level     string    `json:"level,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists and retrieves conversation turns.
type Store interface {
	SaveTurn(ctx context.Context, record TurnRecord) error
	History(ctx context.Context, sessionID string, limit int) ([]TurnRecord, error)
	Close() error
}
