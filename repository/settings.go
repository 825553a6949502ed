package repository

import (
	"context"

	"github.com/Laaxxmm/Pomodoro/domain"
)

type SettingsRepository interface {
	// Get returns the user's settings, creating the default row when absent.
	Get(ctx context.Context, userID string) (*domain.Settings, error)
	Update(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
}
