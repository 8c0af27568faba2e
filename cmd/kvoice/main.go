package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/kvoice/kvoice/internal/client"
	"github.com/kvoice/kvoice/internal/config"
	"github.com/kvoice/kvoice/internal/export"
	"github.com/kvoice/kvoice/internal/invoice"
	"github.com/kvoice/kvoice/internal/observability"
	"github.com/kvoice/kvoice/internal/payment"
	"github.com/kvoice/kvoice/internal/profile"
	"github.com/kvoice/kvoice/internal/quota"
	"github.com/kvoice/kvoice/internal/server"
	"github.com/kvoice/kvoice/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		fx.Provide(newSnowflakeNode),
		quota.Module,
		profile.Module,
		client.Module,
		payment.Module,
		invoice.Module,
		export.Module,
		server.Module,
	)

	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
