package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Laaxxmm/Pomodoro/api/transport"
	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/pkg/httpcontext"
	pomodoroUC "github.com/Laaxxmm/Pomodoro/usecase/pomodoro"
)

type PomodoroHandler struct {
	baseHandler
	uc *pomodoroUC.UseCase
}

func NewPomodoroHandler(uc *pomodoroUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PomodoroHandler {
	return &PomodoroHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Start a pomodoro session
// @Tags pomodoro
// @Router /api/v1/pomodoro/start [post]
func (h *PomodoroHandler) Start(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.StartPomodoroRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Start(stdCtx, userID, req.TaskID, domain.SessionKind(req.SessionType))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, session)
}

// @Summary Complete a pomodoro session
// @Tags pomodoro
// @Router /api/v1/pomodoro/complete [post]
func (h *PomodoroHandler) Complete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.CompletePomodoroRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.SessionID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Complete(stdCtx, req.SessionID, req.DurationSeconds)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, session)
}

// @Summary Today's pomodoro stats
// @Tags pomodoro
// @Router /api/v1/pomodoro/stats [get]
func (h *PomodoroHandler) Stats(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.TodayStats(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}
