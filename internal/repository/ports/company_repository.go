package ports

import (
	"context"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
)

type CompanyUpdate struct {
	Name    *string
	Email   *string
	Number  *string
	Zipcode *string
	City    *string
	State   *string
	Country *string
}

type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	FindByEmail(ctx context.Context, email string) (*domain.Company, error)
	FindByID(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context, limit, offset int, sortBy, sortDirection string) ([]domain.CompanyWithCreator, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, update CompanyUpdate) (*domain.Company, error)
	Delete(ctx context.Context, id int64) error

	AddMember(ctx context.Context, companyID, userID int64) (*domain.UserCompany, error)
	ListMembers(ctx context.Context, companyID int64) ([]domain.CompanyMember, error)

	AddImage(ctx context.Context, companyID int64, imagePath string) (*domain.CompanyImage, error)
}
