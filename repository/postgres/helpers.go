package postgres

import (
	"encoding/json"

	"github.com/Laaxxmm/Pomodoro/domain"
)

func marshalRecurrence(r *domain.Recurrence) []byte {
	if r == nil {
		return nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil
	}
	return b
}

func unmarshalRecurrence(data []byte) *domain.Recurrence {
	if len(data) == 0 {
		return nil
	}
	var r domain.Recurrence
	if err := json.Unmarshal(data, &r); err != nil {
		return nil
	}
	return &r
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
