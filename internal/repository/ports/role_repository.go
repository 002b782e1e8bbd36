package ports

import (
	"context"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
)

type RoleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
}
