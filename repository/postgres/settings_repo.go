package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/repository"
)

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a Postgres-backed implementation of SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) repository.SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	const query = `
	SELECT user_id, pomodoro_work_minutes, pomodoro_short_break, pomodoro_long_break,
		daily_task_limit, auto_rollover
	FROM user_settings
	WHERE user_id = $1
	`
	var settings domain.Settings
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.PomodoroWorkMinutes,
		&settings.PomodoroShortBreak,
		&settings.PomodoroLongBreak,
		&settings.DailyTaskLimit,
		&settings.AutoRollover,
	)
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	defaults := domain.DefaultSettings(userID)
	return r.Update(ctx, defaults)
}

func (r *settingsRepository) Update(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	if settings == nil || settings.UserID == "" {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO user_settings (user_id, pomodoro_work_minutes, pomodoro_short_break, pomodoro_long_break,
		daily_task_limit, auto_rollover)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id) DO UPDATE
	SET pomodoro_work_minutes = EXCLUDED.pomodoro_work_minutes,
		pomodoro_short_break = EXCLUDED.pomodoro_short_break,
		pomodoro_long_break = EXCLUDED.pomodoro_long_break,
		daily_task_limit = EXCLUDED.daily_task_limit,
		auto_rollover = EXCLUDED.auto_rollover
	`
	_, err := r.pool.Exec(ctx, query,
		settings.UserID,
		settings.PomodoroWorkMinutes,
		settings.PomodoroShortBreak,
		settings.PomodoroLongBreak,
		settings.DailyTaskLimit,
		settings.AutoRollover,
	)
	if err != nil {
		return nil, err
	}
	return settings, nil
}
