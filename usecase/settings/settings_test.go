package settings

import (
	"context"
	"testing"

	"github.com/Laaxxmm/Pomodoro/repository/memory"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestGetMaterializesDefaults(t *testing.T) {
	uc := New(memory.NewSettingsRepository(), nil)

	got, err := uc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PomodoroWorkMinutes != 25 || got.PomodoroShortBreak != 5 || got.PomodoroLongBreak != 15 {
		t.Fatalf("unexpected pomodoro defaults: %+v", got)
	}
	if got.DailyTaskLimit != 4 {
		t.Fatalf("daily task limit %d, want 4", got.DailyTaskLimit)
	}
	if !got.AutoRollover {
		t.Fatal("auto rollover should default on")
	}
}

func TestUpdateAppliesOnlyPatchedFields(t *testing.T) {
	uc := New(memory.NewSettingsRepository(), nil)

	updated, err := uc.Update(context.Background(), "user-1", Patch{
		PomodoroWorkMinutes: intPtr(50),
		AutoRollover:        boolPtr(false),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PomodoroWorkMinutes != 50 {
		t.Fatalf("work minutes %d, want 50", updated.PomodoroWorkMinutes)
	}
	if updated.AutoRollover {
		t.Fatal("auto rollover should be off")
	}
	// Untouched fields keep their values.
	if updated.PomodoroShortBreak != 5 || updated.DailyTaskLimit != 4 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	// A later patch without auto_rollover must not flip it back.
	again, err := uc.Update(context.Background(), "user-1", Patch{DailyTaskLimit: intPtr(6)})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if again.AutoRollover {
		t.Fatal("omitted field was reset")
	}
	if again.DailyTaskLimit != 6 || again.PomodoroWorkMinutes != 50 {
		t.Fatalf("merge lost earlier values: %+v", again)
	}
}

func TestUpdateIgnoresNonPositiveValues(t *testing.T) {
	uc := New(memory.NewSettingsRepository(), nil)

	updated, err := uc.Update(context.Background(), "user-1", Patch{
		PomodoroWorkMinutes: intPtr(0),
		DailyTaskLimit:      intPtr(-3),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PomodoroWorkMinutes != 25 || updated.DailyTaskLimit != 4 {
		t.Fatalf("non-positive values should be ignored: %+v", updated)
	}
}
