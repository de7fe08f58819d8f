package components

import (
	"minimarket-backoffice/internal/jobs"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		jobs.NewMaintenanceRunner,
	),
	fx.Invoke(jobs.RegisterMaintenanceRunner),
)
