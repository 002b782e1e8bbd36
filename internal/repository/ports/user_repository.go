package ports

import (
	"context"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, name *string, email, passwordDigest string, city, state, country *string, roleID int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateAccount(ctx context.Context, id int64, name, city, state, country, passwordDigest *string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordDigest string) error
	UpdateImageURL(ctx context.Context, id int64, imageURL string) error
	List(ctx context.Context, limit, offset int, sortBy, sortDirection string) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
