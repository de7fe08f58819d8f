package commands

import (
	"context"
	"log/slog"

	"minimarket-backoffice/internal/domain/user"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/pkg/errs"
	"minimarket-backoffice/internal/pkg/jwt"
	"minimarket-backoffice/internal/pkg/password"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthorizedUserReader is the read-side lookup the login flow needs.
type AuthorizedUserReader interface {
	FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error)
}

type LoginResult struct {
	Token string
	User  *queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	users      AuthorizedUserReader
	userRepo   UserRepository
	jwtService *jwt.Service
	pool       *pgxpool.Pool
}

func NewAuthCommands(users AuthorizedUserReader, userRepo UserRepository, jwtService *jwt.Service, pool *pgxpool.Pool) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		userRepo:   userRepo,
		jwtService: jwtService,
		pool:       pool,
	}
}

// Login authenticates by email and password and returns a signed token.
// Unknown email and wrong password both report invalid credentials so the
// response does not leak which accounts exist.
func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	view, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindInvalidArgument, "invalid credentials")
		}
		return nil, err
	}
	if !view.IsActive {
		return nil, errs.E(errs.KindInvalidArgument, "invalid credentials")
	}
	if err := password.ComparePassword(view.PasswordHash, rawPassword); err != nil {
		return nil, errs.E(errs.KindInvalidArgument, "invalid credentials")
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Wrap(err, "stored role is invalid")
	}
	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	// Last-login bookkeeping must not fail the login.
	if err := a.userRepo.UpdateLastLogin(ctx, a.pool, view.ID); err != nil {
		slog.WarnContext(ctx, "failed to update last login", "user_id", view.ID, "error", err)
	}

	return &LoginResult{Token: token, User: view}, nil
}
