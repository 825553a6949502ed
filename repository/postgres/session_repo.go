package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/repository"
)

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) repository.SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.PomodoroSession) (*domain.PomodoroSession, error) {
	if session == nil || session.TaskID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.Kind == "" {
		session.Kind = domain.SessionWork
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}

	const query = `
	INSERT INTO pomodoro_sessions (id, user_id, task_id, started_at, ended_at, duration_seconds, session_type, completed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.TaskID,
		session.StartedAt,
		session.EndedAt,
		session.DurationSeconds,
		string(session.Kind),
		session.Completed,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.PomodoroSession, error) {
	const query = `
	SELECT id, user_id, task_id, started_at, ended_at, duration_seconds, session_type, completed
	FROM pomodoro_sessions
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanSession(row)
}

func (r *sessionRepository) Complete(ctx context.Context, id string, endedAt time.Time, durationSeconds int) (*domain.PomodoroSession, error) {
	const query = `
	UPDATE pomodoro_sessions
	SET ended_at = $2,
		duration_seconds = $3,
		completed = TRUE
	WHERE id = $1
	RETURNING id, user_id, task_id, started_at, ended_at, duration_seconds, session_type, completed
	`
	row := r.pool.QueryRow(ctx, query, id, endedAt, durationSeconds)
	session, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) ListCompletedWork(ctx context.Context, userID, sinceDate string, limit int) ([]domain.PomodoroSession, error) {
	const query = `
	SELECT id, user_id, task_id, started_at, ended_at, duration_seconds, session_type, completed
	FROM pomodoro_sessions
	WHERE ($1 = '' OR user_id = $1)
	  AND session_type = 'work'
	  AND completed = TRUE
	  AND started_at >= $2::date
	ORDER BY started_at DESC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, sinceDate, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.PomodoroSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func scanSession(row interface {
	Scan(dest ...interface{}) error
}) (*domain.PomodoroSession, error) {
	var session domain.PomodoroSession
	var kind string

	if err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.TaskID,
		&session.StartedAt,
		&session.EndedAt,
		&session.DurationSeconds,
		&kind,
		&session.Completed,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	session.Kind = domain.SessionKind(kind)
	return &session, nil
}
