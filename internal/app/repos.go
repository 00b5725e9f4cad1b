package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/strategist-backend/internal/logger"
	"github.com/yungbote/strategist-backend/internal/repos"
)

type Repos struct {
	BanditConfig repos.BanditConfigRepo
	ArmState     repos.ArmStateRepo
	Observation  repos.ObservationRepo
	PostHistory  repos.PostHistoryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		BanditConfig: repos.NewBanditConfigRepo(db, log),
		ArmState:     repos.NewArmStateRepo(db, log),
		Observation:  repos.NewObservationRepo(db, log),
		PostHistory:  repos.NewPostHistoryRepo(db, log),
	}
}
