package bootstrap

import (
	"minimarket-backoffice/internal/pkg/config"
	"minimarket-backoffice/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(func(cfg config.Config) *jwt.Service {
		return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration)
	}),
)
