package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/brandforge/brandforge-backend/internal/logger"
)

func TestBundleListSeedsCatalogOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	catalog := []BundleSpec{
		{Name: "Brand Foundation", AssetNames: []string{"Purpose", "Positioning"}, BasePrice: 2200, Discount: 200},
		{Name: "Full Strategy", AssetNames: []string{"Purpose", "Positioning", "Voice"}, BasePrice: 2550, Discount: 3000},
	}
	svc := NewBundleService(env.db, logger.NewNop(), env.repos.bundles, catalog)

	rows, err := svc.List(ctx, workspaceID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("bundles: want=2 got=%d", len(rows))
	}

	byName := map[string]float64{}
	for _, b := range rows {
		byName[b.Name] = b.FinalPrice
	}
	if byName["Brand Foundation"] != 2000 {
		t.Fatalf("final price: want=2000 got=%v", byName["Brand Foundation"])
	}
	// Discounts never push the price below zero.
	if byName["Full Strategy"] != 0 {
		t.Fatalf("clamped final price: want=0 got=%v", byName["Full Strategy"])
	}

	// A second list must not duplicate the seed.
	rows, err = svc.List(ctx, workspaceID)
	if err != nil {
		t.Fatalf("second List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("bundles after reseed: want=2 got=%d", len(rows))
	}
}

func TestBundleListIsWorkspaceScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	catalog := []BundleSpec{{Name: "Brand Foundation", BasePrice: 2200, Discount: 200}}
	svc := NewBundleService(env.db, logger.NewNop(), env.repos.bundles, catalog)

	if _, err := svc.List(ctx, uuid.New()); err != nil {
		t.Fatalf("List: %v", err)
	}

	// A different workspace gets its own seeded copy, not the first one's.
	other, err := svc.List(ctx, uuid.New())
	if err != nil {
		t.Fatalf("other List: %v", err)
	}
	if len(other) != 1 {
		t.Fatalf("other workspace bundles: want=1 got=%d", len(other))
	}
}

func TestBundlePurchaseUsesFinalPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	asset := seedAsset(t, ctx, env, workspaceID, "Purpose")

	catalog := []BundleSpec{{Name: "Brand Foundation", BasePrice: 2500, Discount: 250}}
	svc := NewBundleService(env.db, logger.NewNop(), env.repos.bundles, catalog)
	rows, err := svc.List(ctx, workspaceID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	bundleID := rows[0].ID

	res, err := env.workshops.Purchase(ctx, workspaceID, PurchaseSelection{
		Mode:             PricingModeBundle,
		BundleID:         &bundleID,
		SelectedAssetIDs: []uuid.UUID{asset.ID},
		WorkshopCount:    1,
	})
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if res.TotalPrice != 2250 {
		t.Fatalf("total: want=2250 got=%v", res.TotalPrice)
	}
}
