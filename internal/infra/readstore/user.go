package readstore

import (
	"context"

	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/pgconv"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, role, is_active
		FROM users
		WHERE email = $1
	`, email)

	return scanAuthorizedUser(row)
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, role, is_active
		FROM users
		WHERE id = $1
	`, pgconv.UUIDToPgtype(id))

	return scanAuthorizedUser(row)
}

func scanAuthorizedUser(row interface{ Scan(dest ...any) error }) (*queries.AuthorizedUserView, error) {
	var (
		id           pgtype.UUID
		email        string
		passwordHash string
		role         string
		isActive     bool
	)
	if err := row.Scan(&id, &email, &passwordHash, &role, &isActive); err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	return &queries.AuthorizedUserView{
		ID:           uuid.UUID(id.Bytes),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     isActive,
	}, nil
}
