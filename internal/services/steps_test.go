package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
	"github.com/brandforge/brandforge-backend/internal/domain/validation"
)

func TestSaveStepUpdatesProgressAndCursor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Positioning")
	ws := purchaseWorkshop(t, ctx, env, workspaceID, asset.ID)
	startWorkshop(t, ctx, env, workspaceID, ws.ID)

	res, err := env.steps.SaveStep(ctx, workspaceID, ws.ID, 1, strPtr("kickoff notes"), boolPtr(true))
	if err != nil {
		t.Fatalf("SaveStep: %v", err)
	}
	if !res.Step.IsCompleted || res.Step.CompletedAt == nil {
		t.Fatal("step not marked completed")
	}
	if want := 100.0 / float64(domain.TotalSteps); res.Progress < want-0.01 || res.Progress > want+0.01 {
		t.Fatalf("progress: want=%v got=%v", want, res.Progress)
	}

	stored, err := env.workshops.Get(ctx, workspaceID, ws.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.CurrentStep != 1 {
		t.Fatalf("cursor: want=1 got=%d", stored.CurrentStep)
	}

	// Saving a later step moves the cursor with it.
	if _, err := env.steps.SaveStep(ctx, workspaceID, ws.ID, 3, strPtr("draft"), nil); err != nil {
		t.Fatalf("SaveStep 3: %v", err)
	}
	stored, err = env.workshops.Get(ctx, workspaceID, ws.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.CurrentStep != 3 {
		t.Fatalf("cursor: want=3 got=%d", stored.CurrentStep)
	}
}

func TestSaveStepCompletionIsMonotone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Positioning")
	ws := purchaseWorkshop(t, ctx, env, workspaceID, asset.ID)
	startWorkshop(t, ctx, env, workspaceID, ws.ID)

	if _, err := env.steps.SaveStep(ctx, workspaceID, ws.ID, 2, nil, boolPtr(true)); err != nil {
		t.Fatalf("SaveStep: %v", err)
	}

	// An explicit false never reverts a completed step.
	res, err := env.steps.SaveStep(ctx, workspaceID, ws.ID, 2, strPtr("revised"), boolPtr(false))
	if err != nil {
		t.Fatalf("SaveStep false: %v", err)
	}
	if !res.Step.IsCompleted {
		t.Fatal("completion reverted")
	}
	if res.Step.Response == nil || *res.Step.Response != "revised" {
		t.Fatalf("response: got=%v", res.Step.Response)
	}
}

func TestSaveStepRejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Positioning")
	ws := purchaseWorkshop(t, ctx, env, workspaceID, asset.ID)
	startWorkshop(t, ctx, env, workspaceID, ws.ID)

	for _, step := range []int{0, -1, domain.TotalSteps + 1} {
		if _, err := env.steps.SaveStep(ctx, workspaceID, ws.ID, step, nil, boolPtr(true)); !errors.Is(err, domain.ErrInvalidStep) {
			t.Fatalf("step %d: want ErrInvalidStep, got %v", step, err)
		}
	}
}

func TestSaveStepRejectedAfterCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Positioning")
	ws := purchaseWorkshop(t, ctx, env, workspaceID, asset.ID)
	startWorkshop(t, ctx, env, workspaceID, ws.ID)
	if _, err := env.workshops.Complete(ctx, workspaceID, ws.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if _, err := env.steps.SaveStep(ctx, workspaceID, ws.ID, 1, strPtr("late"), nil); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestSaveStepFeedsWorkshopMethodProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Positioning")
	ws := purchaseWorkshop(t, ctx, env, workspaceID, asset.ID)
	startWorkshop(t, ctx, env, workspaceID, ws.ID)

	for step := 1; step <= 3; step++ {
		if _, err := env.steps.SaveStep(ctx, workspaceID, ws.ID, step, nil, boolPtr(true)); err != nil {
			t.Fatalf("SaveStep %d: %v", step, err)
		}
	}

	// Half the steps done: the workshop method contributes half its weight.
	av, err := env.validation.GetAssetValidation(ctx, workspaceID, asset.ID)
	if err != nil {
		t.Fatalf("GetAssetValidation: %v", err)
	}
	if av.Percentage != 15 {
		t.Fatalf("percentage: want=15 got=%v", av.Percentage)
	}
	for _, m := range av.Methods {
		if m.Method != string(validation.MethodWorkshop) {
			continue
		}
		if m.Status != string(validation.MethodInProgress) {
			t.Fatalf("method status: want=%s got=%s", validation.MethodInProgress, m.Status)
		}
		if m.Progress != 50 {
			t.Fatalf("method progress: want=50 got=%v", m.Progress)
		}
	}
}

func TestSetBookmarkToggles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Positioning")
	ws := purchaseWorkshop(t, ctx, env, workspaceID, asset.ID)

	got, err := env.steps.SetBookmark(ctx, workspaceID, ws.ID, intPtr(4))
	if err != nil {
		t.Fatalf("SetBookmark: %v", err)
	}
	if got == nil || *got != 4 {
		t.Fatalf("bookmark: want=4 got=%v", got)
	}

	// Same step again clears it.
	got, err = env.steps.SetBookmark(ctx, workspaceID, ws.ID, intPtr(4))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got != nil {
		t.Fatalf("bookmark after toggle: want=nil got=%v", *got)
	}

	// Explicit nil clears outright.
	if _, err := env.steps.SetBookmark(ctx, workspaceID, ws.ID, intPtr(2)); err != nil {
		t.Fatalf("SetBookmark 2: %v", err)
	}
	got, err = env.steps.SetBookmark(ctx, workspaceID, ws.ID, nil)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got != nil {
		t.Fatalf("bookmark after clear: want=nil got=%v", *got)
	}

	if _, err := env.steps.SetBookmark(ctx, workspaceID, ws.ID, intPtr(domain.TotalSteps+1)); !errors.Is(err, domain.ErrInvalidStep) {
		t.Fatalf("out of range: want ErrInvalidStep, got %v", err)
	}
}
