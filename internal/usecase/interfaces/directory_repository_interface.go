package interfaces

import (
	"context"

	"brcargo_cotacoes/internal/domain/entities"
)

// IUserRepository resolves caller identities and operator names.
type IUserRepository interface {
	GetByID(ctx context.Context, id string) (entities.User, error)
	ListByRoles(ctx context.Context, roles []entities.Role) ([]entities.User, error)
	Save(ctx context.Context, u entities.User) error
}

// ICompanyRepository resolves providing companies named in a quote response.
type ICompanyRepository interface {
	GetByID(ctx context.Context, id string) (entities.Company, error)
	Save(ctx context.Context, c entities.Company) error
}
