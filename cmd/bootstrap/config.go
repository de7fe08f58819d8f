package bootstrap

import (
	"minimarket-backoffice/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.CORSConfig { return cfg.CORS },
		func(cfg config.Config) config.LogConfig { return cfg.Log },
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.SalesConfig { return cfg.Sales },
		func(cfg config.Config) config.MaintenanceConfig { return cfg.Maintenance },
	),
)
