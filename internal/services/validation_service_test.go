package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brandforge/brandforge-backend/internal/domain/validation"
	domain "github.com/brandforge/brandforge-backend/internal/domain/workshop"
)

func TestGetAssetValidationSeedsMethods(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Purpose")

	av, err := env.validation.GetAssetValidation(ctx, workspaceID, asset.ID)
	if err != nil {
		t.Fatalf("GetAssetValidation: %v", err)
	}
	if av.TotalMethods != len(validation.AllMethods) {
		t.Fatalf("methods: want=%d got=%d", len(validation.AllMethods), av.TotalMethods)
	}
	if av.Percentage != 0 || av.CompletedMethods != 0 {
		t.Fatalf("fresh asset: pct=%v completed=%d", av.Percentage, av.CompletedMethods)
	}
	if av.Status != string(validation.AssetNotValidated) {
		t.Fatalf("status: want=%s got=%s", validation.AssetNotValidated, av.Status)
	}

	// The seed carries the fixed weight table.
	for _, m := range av.Methods {
		if m.Weight != validation.Weight(validation.Method(m.Method)) {
			t.Fatalf("method %s weight: got=%v", m.Method, m.Weight)
		}
	}
}

func TestSetMethodStateRecomputesAsset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Purpose")

	err := env.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		out, err := env.validation.SetMethodState(ctx, tx, asset.ID, validation.MethodInterviews, validation.MethodCompleted, 0)
		if err != nil {
			return err
		}
		if out.Percent != 25 {
			t.Fatalf("outcome percent: want=25 got=%v", out.Percent)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	av, err := env.validation.GetAssetValidation(ctx, workspaceID, asset.ID)
	if err != nil {
		t.Fatalf("GetAssetValidation: %v", err)
	}
	if av.Percentage != 25 {
		t.Fatalf("percentage: want=25 got=%v", av.Percentage)
	}
	if av.CompletedMethods != 1 {
		t.Fatalf("completed: want=1 got=%d", av.CompletedMethods)
	}
	if av.Status != string(validation.AssetInValidation) {
		t.Fatalf("status: want=%s got=%s", validation.AssetInValidation, av.Status)
	}
}

func TestAllMethodsCompletedIsFullyValidated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Purpose")

	err := env.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range validation.AllMethods {
			if _, err := env.validation.SetMethodState(ctx, tx, asset.ID, m, validation.MethodCompleted, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	av, err := env.validation.GetAssetValidation(ctx, workspaceID, asset.ID)
	if err != nil {
		t.Fatalf("GetAssetValidation: %v", err)
	}
	if av.Percentage != 100 {
		t.Fatalf("percentage: want=100 got=%v", av.Percentage)
	}
	if av.Status != string(validation.AssetValidated) {
		t.Fatalf("status: want=%s got=%s", validation.AssetValidated, av.Status)
	}
}

func TestGetAssetValidationRepairsDrift(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Purpose")

	// Corrupt the stored derived columns behind the aggregator's back.
	err := env.db.WithContext(ctx).
		Model(asset).
		Updates(map[string]interface{}{
			"validation_percent": 72.5,
			"validation_status":  string(validation.AssetInValidation),
		}).Error
	if err != nil {
		t.Fatalf("corrupt asset: %v", err)
	}

	av, err := env.validation.GetAssetValidation(ctx, workspaceID, asset.ID)
	if err != nil {
		t.Fatalf("GetAssetValidation: %v", err)
	}
	if av.Percentage != 0 {
		t.Fatalf("percentage: want=0 got=%v", av.Percentage)
	}

	stored, err := env.repos.assets.GetByID(ctx, nil, workspaceID, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ValidationPercent != 0 || stored.ValidationStatus != string(validation.AssetNotValidated) {
		t.Fatalf("drift not repaired: pct=%v status=%s", stored.ValidationPercent, stored.ValidationStatus)
	}
}

func TestGetAssetValidationUnknownAsset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.validation.GetAssetValidation(ctx, uuid.New(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPercentForFallsBackToStoredColumn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Purpose")

	err := env.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := env.validation.SetMethodState(ctx, tx, asset.ID, validation.MethodQuestionnaire, validation.MethodCompleted, 0)
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	stored, err := env.repos.assets.GetByID(ctx, nil, workspaceID, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	// No redis in tests: PercentFor must serve the persisted value.
	if got := env.validation.PercentFor(ctx, stored); got != 30 {
		t.Fatalf("PercentFor: want=30 got=%v", got)
	}
}
