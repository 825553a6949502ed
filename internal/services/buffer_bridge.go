package services

import (
	"context"
	"encoding/json"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/internal/infrastructure/buffer"
	"github.com/Laaxxmm/Pomodoro/usecase/planner"
)

// BufferBridge adapts the buffer processor to the planner's PriorityBuffer
// port, keeping the use case storage-agnostic.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferPriority(ctx context.Context, userID, taskID string, score int, reason string) error {
	if b.processor == nil || taskID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(buffer.PriorityUpdate{
		TaskID: taskID,
		Score:  score,
		Reason: reason,
	})
	if err != nil {
		return err
	}
	item := buffer.Item{
		UserID:   userID,
		Entity:   buffer.EntityPriority,
		Data:     payload,
		Priority: 4,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ planner.PriorityBuffer = (*BufferBridge)(nil)
