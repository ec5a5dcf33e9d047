package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Socratescrolls/backend/internal/extract"
	"github.com/Socratescrolls/backend/internal/tutor"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var ErrNotFound = errors.New("session not found")

// Session holds one uploaded document and its conversation position.
type Session struct {
	ID             string         `json:"object_id"`
	Filename       string         `json:"filename"`
	FileType       string         `json:"file_type"`
	Professor      string         `json:"professor"`
	Pages          []extract.Page `json:"-"`
	NumPages       int            `json:"num_pages"`
	CurrentPage    int            `json:"current_page"`
	Status         Status         `json:"status"`
	AudioFiles     []string       `json:"-"`
	// PendingQuiz is the generated-but-ungraded quiz, treated as immutable
	// once set.
	PendingQuiz    *tutor.Quiz        `json:"-"`
	QuizResults    []tutor.QuizResult `json:"-"`
	StartedAt      time.Time          `json:"started_at"`
	LastActivityAt time.Time          `json:"last_activity_at"`
}

// PageContent returns the text of the given 1-based page.
func (s *Session) PageContent(page int) (string, bool) {
	if page < 1 || page > len(s.Pages) {
		return "", false
	}
	return s.Pages[page-1].Content, true
}

type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	turnLocks map[string]*sync.Mutex
	ttl       time.Duration
	onExpire  func(*Session)
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		turnLocks: make(map[string]*sync.Mutex),
		ttl:       ttl,
	}
}

// SetExpireHook registers a callback fired for each expired session after it
// has been removed from the manager.
func (m *Manager) SetExpireHook(hook func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = hook
}

func (m *Manager) Create(filename, fileType, professor string, pages []extract.Page, startPage int) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:             uuid.NewString(),
		Filename:       filename,
		FileType:       fileType,
		Professor:      professor,
		Pages:          pages,
		NumPages:       len(pages),
		CurrentPage:    startPage,
		Status:         StatusActive,
		StartedAt:      now,
		LastActivityAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.turnLocks[s.ID] = &sync.Mutex{}
	return clone(s)
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(s), nil
}

// LockTurn serializes chat turns against one session. The returned release
// function must be called when the turn finishes.
func (m *Manager) LockTurn(id string) (func(), error) {
	m.mu.RLock()
	lock, ok := m.turnLocks[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	lock.Lock()
	return lock.Unlock, nil
}

// Advance moves the conversation to the given page and refreshes activity.
func (m *Manager) Advance(id string, page int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if page >= 1 && page <= s.NumPages {
		s.CurrentPage = page
	}
	s.LastActivityAt = time.Now().UTC()
	return nil
}

// Complete marks the conversation finished. The session stays readable until
// the janitor expires it.
func (m *Manager) Complete(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.Status = StatusCompleted
	s.LastActivityAt = time.Now().UTC()
	return clone(s), nil
}

// AttachAudio records an audio artifact as belonging to this session so the
// expire hook can clean it up.
func (m *Manager) AttachAudio(id, filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.AudioFiles = append(s.AudioFiles, filename)
	s.LastActivityAt = time.Now().UTC()
	return nil
}

// SetQuiz stores a freshly generated quiz awaiting the student's answers.
// A new quiz replaces any ungraded one.
func (m *Manager) SetQuiz(id string, quiz *tutor.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.PendingQuiz = quiz
	s.LastActivityAt = time.Now().UTC()
	return nil
}

// RecordQuizResult grades out the pending quiz and keeps the result for the
// session's final report.
func (m *Manager) RecordQuizResult(id string, result tutor.QuizResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.PendingQuiz = nil
	s.QuizResults = append(s.QuizResults, result)
	s.LastActivityAt = time.Now().UTC()
	return nil
}

func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, s := range m.sessions {
		if s.Status == StatusActive {
			count++
		}
	}
	return count
}

func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.expireIdle()
			}
		}
	}()
}

func (m *Manager) expireIdle() {
	now := time.Now().UTC()
	var expired []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.LastActivityAt) < m.ttl {
			continue
		}
		expired = append(expired, clone(s))
		delete(m.sessions, id)
		delete(m.turnLocks, id)
	}
	hook := m.onExpire
	m.mu.Unlock()

	if hook != nil {
		for _, s := range expired {
			hook(s)
		}
	}
}

func clone(s *Session) *Session {
	c := *s
	c.Pages = append([]extract.Page(nil), s.Pages...)
	c.AudioFiles = append([]string(nil), s.AudioFiles...)
	c.QuizResults = append([]tutor.QuizResult(nil), s.QuizResults...)
	return &c
}
