package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/repos"
	"github.com/brandforge/brandforge-backend/internal/types"
)

func testDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	// A pooled second connection would get its own empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&types.BrandAsset{},
		&types.ResearchMethod{},
		&types.WorkshopBundle{},
		&types.Workshop{},
		&types.WorkshopStep{},
	); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	return db
}

// testEnv wires the real repos and services against an in-memory database,
// without redis or SSE.
type testEnv struct {
	db     *gorm.DB
	repos  struct {
		workshops repos.WorkshopRepo
		steps     repos.WorkshopStepRepo
		assets    repos.BrandAssetRepo
		methods   repos.ResearchMethodRepo
		bundles   repos.WorkshopBundleRepo
	}
	pricing    PricingService
	validation ValidationService
	workshops  WorkshopService
	steps      StepService
	canvas     CanvasService
	preview    PreviewService
	assets     AssetService
	bundles    BundleService
}

func newTestEnv(tb testing.TB) *testEnv {
	tb.Helper()

	db := testDB(tb)
	log := logger.NewNop()

	env := &testEnv{db: db}
	env.repos.workshops = repos.NewWorkshopRepo(db, log)
	env.repos.steps = repos.NewWorkshopStepRepo(db, log)
	env.repos.assets = repos.NewBrandAssetRepo(db, log)
	env.repos.methods = repos.NewResearchMethodRepo(db, log)
	env.repos.bundles = repos.NewWorkshopBundleRepo(db, log)

	env.pricing = NewPricingService(log, DefaultPrices)
	env.validation = NewValidationService(db, log, env.repos.assets, env.repos.methods, nil, nil)
	env.steps = NewStepService(db, log, env.repos.workshops, env.repos.steps, env.validation)
	env.canvas = NewCanvasService(db, log, env.repos.workshops)
	env.preview = NewPreviewService(db, log, env.repos.assets, env.repos.methods)
	env.assets = NewAssetService(db, log, env.repos.assets, env.repos.methods, env.validation)
	env.workshops = NewWorkshopService(
		db, log,
		env.repos.workshops, env.repos.steps, env.repos.assets, env.repos.bundles,
		env.pricing, env.validation, nil, nil,
	)
	return env
}

func seedAsset(tb testing.TB, ctx context.Context, env *testEnv, workspaceID uuid.UUID, name string) *types.BrandAsset {
	tb.Helper()
	asset, err := env.assets.Create(ctx, workspaceID, name, "strategy")
	if err != nil {
		tb.Fatalf("seed asset %q: %v", name, err)
	}
	return asset
}

func purchaseWorkshop(tb testing.TB, ctx context.Context, env *testEnv, workspaceID uuid.UUID, assetIDs ...uuid.UUID) *types.Workshop {
	tb.Helper()
	res, err := env.workshops.Purchase(ctx, workspaceID, PurchaseSelection{
		Mode:             PricingModeIndividual,
		SelectedAssetIDs: assetIDs,
		WorkshopCount:    1,
	})
	if err != nil {
		tb.Fatalf("purchase: %v", err)
	}
	return res.Workshop
}

func startWorkshop(tb testing.TB, ctx context.Context, env *testEnv, workspaceID, id uuid.UUID) {
	tb.Helper()
	if _, err := env.workshops.Start(ctx, workspaceID, id); err != nil {
		tb.Fatalf("start: %v", err)
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
