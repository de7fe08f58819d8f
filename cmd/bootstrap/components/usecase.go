package components

import (
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/usecase"
	"minimarket-backoffice/internal/usecase/commands"
	"minimarket-backoffice/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewStockCommands,
		commands.NewCartCommands,
		commands.NewOrderCommands,
		commands.NewInvoiceCommands,
		commands.NewDiscountCommands,
		commands.NewProductCommands,
		commands.NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
		queries.NewProductQueries,
		queries.NewOrderQueries,
		queries.NewInvoiceQueries,
		queries.NewDiscountQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
