package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/revu/internal/business"
	"github.com/smallbiznis/revu/internal/config"
	"github.com/smallbiznis/revu/internal/logger"
	"github.com/smallbiznis/revu/internal/metrics"
	"github.com/smallbiznis/revu/internal/migration"
	"github.com/smallbiznis/revu/internal/payment"
	"github.com/smallbiznis/revu/internal/providers/generator"
	"github.com/smallbiznis/revu/internal/ratelimit"
	"github.com/smallbiznis/revu/internal/review"
	"github.com/smallbiznis/revu/internal/server"
	"github.com/smallbiznis/revu/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		ratelimit.Module,

		// Functional domains
		business.Module,
		generator.Module,
		review.Module,
		payment.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
