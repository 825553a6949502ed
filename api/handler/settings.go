package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Laaxxmm/Pomodoro/api/transport"
	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/pkg/httpcontext"
	settingsUC "github.com/Laaxxmm/Pomodoro/usecase/settings"
	statsUC "github.com/Laaxxmm/Pomodoro/usecase/stats"
)

type SettingsHandler struct {
	baseHandler
	settings *settingsUC.UseCase
	stats    *statsUC.UseCase
}

func NewSettingsHandler(settings *settingsUC.UseCase, stats *statsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		settings:    settings,
		stats:       stats,
	}
}

// @Summary Get user settings
// @Tags settings
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	settings, err := h.settings.Get(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, settings)
}

// @Summary Update user settings
// @Tags settings
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.SettingsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.settings.Update(stdCtx, userID, settingsUC.Patch{
		PomodoroWorkMinutes: req.PomodoroWorkMinutes,
		PomodoroShortBreak:  req.PomodoroShortBreak,
		PomodoroLongBreak:   req.PomodoroLongBreak,
		DailyTaskLimit:      req.DailyTaskLimit,
		AutoRollover:        req.AutoRollover,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Productivity stats
// @Tags settings
// @Router /api/v1/stats [get]
func (h *SettingsHandler) Stats(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.stats.Summary(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}
