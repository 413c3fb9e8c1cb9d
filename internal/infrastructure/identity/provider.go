package identity

import (
	"context"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/DRSN-tech/product-catalog/pkg/e"
)

// Provider отдаёт текущего пользователя по subject из контекста.
// Пользователь читается из хранилища при каждом вызове.
type Provider struct {
	users usecase.UserRepository
}

func NewProvider(users usecase.UserRepository) *Provider {
	return &Provider{users: users}
}

// CurrentPrincipal возвращает (nil, nil), если запрос не аутентифицирован или пользователя больше нет.
func (p *Provider) CurrentPrincipal(ctx context.Context) (*domain.Principal, error) {
	const op = "identity.Provider.CurrentPrincipal"

	id, ok := SubjectFromCtx(ctx)
	if !ok {
		return nil, nil
	}

	principal, err := p.users.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return principal, nil
}
