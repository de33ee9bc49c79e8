package main

import (
	"github.com/smallbiznis/accountresolver/internal/clock"
	"github.com/smallbiznis/accountresolver/internal/config"
	"github.com/smallbiznis/accountresolver/internal/migration"
	"github.com/smallbiznis/accountresolver/internal/observability"
	"github.com/smallbiznis/accountresolver/internal/server"
	"github.com/smallbiznis/accountresolver/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		server.Module,
		migration.Module,
	)
	app.Run()
}
