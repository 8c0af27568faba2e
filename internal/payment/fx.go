package payment

import (
	"github.com/kvoice/kvoice/internal/payment/domain"
	"github.com/kvoice/kvoice/internal/payment/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("payment.service",
	fx.Provide(service.New),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Payment{})
}
