package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
)

// UserRepo читает пользователей, которым принадлежат товары.
type UserRepo struct {
	db   DB
	conv converter.UserConverter
}

func NewUserRepo(db DB, conv converter.UserConverter) *UserRepo {
	return &UserRepo{
		db:   db,
		conv: conv,
	}
}

// GetByID возвращает пользователя или (nil, nil), если его нет.
func (u *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	query := `
		SELECT id, email, first_name, last_name
		FROM users
		WHERE id = $1
	`

	var model converter.UserModel
	err := tr.QuerierFromCtx(ctx, u.db).QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Email, &model.FirstName, &model.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.NewStoreError(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}
