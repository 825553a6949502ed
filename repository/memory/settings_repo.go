package memory

import (
	"context"
	"sync"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/repository"
)

type SettingsRepository struct {
	mu       sync.RWMutex
	settings map[string]domain.Settings
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{settings: make(map[string]domain.Settings)}
}

func (r *SettingsRepository) Get(_ context.Context, userID string) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.settings[userID]
	if !ok {
		stored = *domain.DefaultSettings(userID)
		r.settings[userID] = stored
	}
	copied := stored
	return &copied, nil
}

func (r *SettingsRepository) Update(_ context.Context, settings *domain.Settings) (*domain.Settings, error) {
	if settings == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[settings.UserID] = *settings
	copied := *settings
	return &copied, nil
}

var _ repository.SettingsRepository = (*SettingsRepository)(nil)
