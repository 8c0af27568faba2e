package invoice

import (
	"github.com/kvoice/kvoice/internal/invoice/domain"
	"github.com/kvoice/kvoice/internal/invoice/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("invoice.service",
	fx.Provide(service.New),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Invoice{})
}
