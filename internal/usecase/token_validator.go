package usecase

import (
	"minimarket-backoffice/internal/domain/user"
	"minimarket-backoffice/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator turns a bearer token into an authenticated identity. It
// sits between the HTTP middleware and the jwt package so handlers never
// touch raw claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type tokenValidator struct {
	jwt *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidator{jwt: jwtService}
}

func (v *tokenValidator) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := v.jwt.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, role, nil
}
