package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Laaxxmm/Pomodoro/pkg/httpcontext"
	plannerUC "github.com/Laaxxmm/Pomodoro/usecase/planner"
)

type PlannerHandler struct {
	baseHandler
	uc *plannerUC.UseCase
}

func NewPlannerHandler(uc *plannerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PlannerHandler {
	return &PlannerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Today's prioritized tasks
// @Tags planner
// @Router /api/v1/today [get]
func (h *PlannerHandler) Today(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Today(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Re-run prioritization for today
// @Tags planner
// @Router /api/v1/prioritize [post]
func (h *PlannerHandler) Prioritize(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Reprioritize(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Roll unfinished tasks to tomorrow
// @Tags planner
// @Router /api/v1/rollover [post]
func (h *PlannerHandler) Rollover(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Rollover(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}
