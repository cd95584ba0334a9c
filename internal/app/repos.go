package app

import (
	"gorm.io/gorm"

	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/repos"
)

type Repos struct {
	Workshop       repos.WorkshopRepo
	WorkshopStep   repos.WorkshopStepRepo
	BrandAsset     repos.BrandAssetRepo
	ResearchMethod repos.ResearchMethodRepo
	WorkshopBundle repos.WorkshopBundleRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Workshop:       repos.NewWorkshopRepo(db, log),
		WorkshopStep:   repos.NewWorkshopStepRepo(db, log),
		BrandAsset:     repos.NewBrandAssetRepo(db, log),
		ResearchMethod: repos.NewResearchMethodRepo(db, log),
		WorkshopBundle: repos.NewWorkshopBundleRepo(db, log),
	}
}
