package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/repository"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.PomodoroSession
	order    []string
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]domain.PomodoroSession)}
}

func (r *SessionRepository) Create(_ context.Context, session *domain.PomodoroSession) (*domain.PomodoroSession, error) {
	if session == nil || session.TaskID == "" {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	r.sessions[session.ID] = *session
	r.order = append(r.order, session.ID)
	copied := *session
	return &copied, nil
}

func (r *SessionRepository) GetByID(_ context.Context, id string) (*domain.PomodoroSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (r *SessionRepository) Complete(_ context.Context, id string, endedAt time.Time, durationSeconds int) (*domain.PomodoroSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	session.EndedAt = &endedAt
	session.DurationSeconds = durationSeconds
	session.Completed = true
	r.sessions[id] = session
	copied := session
	return &copied, nil
}

func (r *SessionRepository) ListCompletedWork(_ context.Context, userID, sinceDate string, limit int) ([]domain.PomodoroSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	var out []domain.PomodoroSession
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		session, ok := r.sessions[r.order[i]]
		if !ok {
			continue
		}
		if userID != "" && session.UserID != userID {
			continue
		}
		if !session.Completed || session.Kind != domain.SessionWork {
			continue
		}
		if sinceDate != "" && domain.Date(session.StartedAt) < sinceDate {
			continue
		}
		out = append(out, session)
	}
	return out, nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
