package profile

import (
	"github.com/kvoice/kvoice/internal/profile/domain"
	"github.com/kvoice/kvoice/internal/profile/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("profile.service",
	fx.Provide(service.New),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Profile{})
}
