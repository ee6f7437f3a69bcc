package fx

import (
	"database/sql"

	"guardian-beam/internal/api"
	"guardian-beam/internal/auth"
	"guardian-beam/internal/config"
	"guardian-beam/internal/database"
	"guardian-beam/internal/db"
	"guardian-beam/internal/logger"
	"guardian-beam/internal/metrics"
	"guardian-beam/internal/repository"
	"guardian-beam/internal/server"
	"guardian-beam/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	config.Module,
	database.Module,
	metrics.Module,
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewTransactor),
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewLabelRepository),
	fx.Provide(repository.NewTicketRepository),
	// api client
	fx.Provide(api.NewSlackClient),
	// svc
	fx.Provide(service.SystemClock),
	fx.Provide(service.NewPlayerRegistry),
	fx.Provide(service.NewLabelCatalog),
	fx.Provide(service.NewTicketStore),
	fx.Provide(service.NewQueryEngine),
	// auth
	fx.Provide(auth.NewVerifier),
	fx.Provide(auth.NewInterceptor),
	// server
	fx.Provide(server.NewModerationServer),
)
