package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
	"github.com/accounthub/Account_Hub_BackEnd/internal/media"
	"github.com/accounthub/Account_Hub_BackEnd/internal/repository/ports"
)

var (
	ErrCompanyAlreadyExists = errors.New("a company with this email already exists")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrMemberAlreadyAdded   = errors.New("user is already associated with this company")
)

type CompanyService struct {
	companies ports.CompanyRepository
	users     ports.UserRepository
	storage   ports.ObjectStorage
	processor media.Processor

	companyBucket string
	maxImageBytes int64
}

func NewCompanyService(companies ports.CompanyRepository, users ports.UserRepository, storage ports.ObjectStorage, processor media.Processor, companyBucket string, maxImageBytes int64) *CompanyService {
	return &CompanyService{
		companies:     companies,
		users:         users,
		storage:       storage,
		processor:     processor,
		companyBucket: companyBucket,
		maxImageBytes: maxImageBytes,
	}
}

type CompanyRegisterInput struct {
	Name    string
	Email   string
	Number  string
	Zipcode *string
	City    *string
	State   *string
	Country *string
}

// Register creates a company owned by the calling user.
func (s *CompanyService) Register(ctx context.Context, creatorID int64, input CompanyRegisterInput) (*domain.Company, error) {
	company := &domain.Company{
		Name:      input.Name,
		Email:     input.Email,
		Number:    input.Number,
		Zipcode:   input.Zipcode,
		City:      input.City,
		State:     input.State,
		Country:   input.Country,
		CreatorID: creatorID,
	}

	created, err := s.companies.Create(ctx, company)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCompanyAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

type CompanyListResult struct {
	Companies []domain.CompanyWithCreator
	Total     int64
	Limit     int
	Offset    int
}

func (s *CompanyService) List(ctx context.Context, limit, offset int, sortBy, sortDirection string) (*CompanyListResult, error) {
	nLimit, nOffset := normalizePagination(limit, offset)

	companies, err := s.companies.List(ctx, nLimit, nOffset, sortBy, sortDirection)
	if err != nil {
		return nil, err
	}
	total, err := s.companies.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &CompanyListResult{Companies: companies, Total: total, Limit: nLimit, Offset: nOffset}, nil
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, id int64, update ports.CompanyUpdate) (*domain.Company, error) {
	company, err := s.companies.Update(ctx, id, update)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrCompanyNotFound
		case isUniqueViolation(err):
			return nil, ErrCompanyAlreadyExists
		default:
			return nil, err
		}
	}
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCompanyNotFound
		}
		return err
	}
	return nil
}

// AddMember associates an existing user with an existing company.
func (s *CompanyService) AddMember(ctx context.Context, companyID, userID int64) (*domain.UserCompany, error) {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		if isNotFound(err) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	membership, err := s.companies.AddMember(ctx, companyID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrMemberAlreadyAdded
		}
		return nil, err
	}
	return membership, nil
}

type CompanyMembersResult struct {
	Company *domain.Company
	Members []domain.CompanyMember
}

func (s *CompanyService) Members(ctx context.Context, companyID int64) (*CompanyMembersResult, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	members, err := s.companies.ListMembers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &CompanyMembersResult{Company: company, Members: members}, nil
}

// UploadImage normalizes and stores a company image and records it in the
// company's image gallery.
func (s *CompanyService) UploadImage(ctx context.Context, companyID int64, upload media.Upload) (*domain.CompanyImage, error) {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		if isNotFound(err) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if s.maxImageBytes > 0 && upload.Size > s.maxImageBytes {
		return nil, ErrImageTooLarge
	}

	result, err := s.processor.Process(ctx, upload, 0)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("companies/%d/%s%s", companyID, uuid.NewString(), extensionFor(result.ContentType))
	url, err := s.storage.Upload(ctx, s.companyBucket, objectName, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return nil, err
	}

	return s.companies.AddImage(ctx, companyID, url)
}
