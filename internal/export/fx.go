package export

import (
	"github.com/kvoice/kvoice/internal/export/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("export",
	fx.Provide(pdf.NewRenderer),
)
