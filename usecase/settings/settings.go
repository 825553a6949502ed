package settings

import (
	"context"

	"go.uber.org/zap"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/repository"
)

// Patch carries a partial settings update; nil fields stay unchanged.
type Patch struct {
	PomodoroWorkMinutes *int
	PomodoroShortBreak  *int
	PomodoroLongBreak   *int
	DailyTaskLimit      *int
	AutoRollover        *bool
}

// UseCase reads and updates per-user settings, materializing defaults on
// first access.
type UseCase struct {
	settings repository.SettingsRepository
	logger   *zap.Logger
}

func New(settings repository.SettingsRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		settings: settings,
		logger:   logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	return uc.settings.Get(ctx, userID)
}

// Update applies the patch onto the stored settings and persists the result.
func (uc *UseCase) Update(ctx context.Context, userID string, patch Patch) (*domain.Settings, error) {
	current, err := uc.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.PomodoroWorkMinutes != nil && *patch.PomodoroWorkMinutes > 0 {
		current.PomodoroWorkMinutes = *patch.PomodoroWorkMinutes
	}
	if patch.PomodoroShortBreak != nil && *patch.PomodoroShortBreak > 0 {
		current.PomodoroShortBreak = *patch.PomodoroShortBreak
	}
	if patch.PomodoroLongBreak != nil && *patch.PomodoroLongBreak > 0 {
		current.PomodoroLongBreak = *patch.PomodoroLongBreak
	}
	if patch.DailyTaskLimit != nil && *patch.DailyTaskLimit > 0 {
		current.DailyTaskLimit = *patch.DailyTaskLimit
	}
	if patch.AutoRollover != nil {
		current.AutoRollover = *patch.AutoRollover
	}

	return uc.settings.Update(ctx, current)
}
