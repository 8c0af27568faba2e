package client

import (
	"github.com/kvoice/kvoice/internal/client/domain"
	"github.com/kvoice/kvoice/internal/client/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("client.service",
	fx.Provide(service.New),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Client{})
}
