package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
	"github.com/accounthub/Account_Hub_BackEnd/internal/media"
	"github.com/accounthub/Account_Hub_BackEnd/internal/repository/ports"
	"github.com/accounthub/Account_Hub_BackEnd/internal/util"
)

var (
	ErrEmailAlreadyRegistered = errors.New("a user with this email already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrSamePassword           = errors.New("new password must be different from the current password")
	ErrImageTooLarge          = errors.New("image exceeds the allowed size")
	ErrStorageUnavailable     = errors.New("object storage is not configured")
)

// RegistrationSender delivers the registration-confirmation mail.
type RegistrationSender interface {
	SendRegistrationConfirmation(ctx context.Context, email string) error
}

type UserService struct {
	users     ports.UserRepository
	storage   ports.ObjectStorage
	processor media.Processor
	mailer    RegistrationSender

	profileBucket string
	maxImageBytes int64
}

func NewUserService(users ports.UserRepository, storage ports.ObjectStorage, processor media.Processor, mailer RegistrationSender, profileBucket string, maxImageBytes int64) *UserService {
	return &UserService{
		users:         users,
		storage:       storage,
		processor:     processor,
		mailer:        mailer,
		profileBucket: profileBucket,
		maxImageBytes: maxImageBytes,
	}
}

type UserRegisterInput struct {
	Name     *string
	Email    string
	Password string
	City     *string
	State    *string
	Country  *string
}

func (s *UserService) Register(ctx context.Context, input UserRegisterInput) (*domain.User, error) {
	digest, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, input.Name, input.Email, digest, input.City, input.State, input.Country, domain.RoleMember)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendRegistrationConfirmation(ctx, user.Email); err != nil {
			log.Printf("registration mail to %s failed: %v", user.Email, err)
		}
	}
	return user, nil
}

type UserListResult struct {
	Users  []domain.User
	Total  int64
	Limit  int
	Offset int
}

func (s *UserService) List(ctx context.Context, limit, offset int, sortBy, sortDirection string) (*UserListResult, error) {
	nLimit, nOffset := normalizePagination(limit, offset)

	users, err := s.users.List(ctx, nLimit, nOffset, sortBy, sortDirection)
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &UserListResult{Users: users, Total: total, Limit: nLimit, Offset: nOffset}, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UserUpdateInput struct {
	Name        *string
	NewPassword *string
	City        *string
	State       *string
	Country     *string
}

// Update applies a partial update to the caller's own record. A new password
// identical to the current one is rejected, matching the registration flow's
// credential rules. Profile fields and the credential go to the store in a
// single write, so a failed update leaves the record untouched.
func (s *UserService) Update(ctx context.Context, user *domain.User, input UserUpdateInput) (*domain.User, error) {
	var digest *string
	if input.NewPassword != nil {
		if util.VerifyPassword(user.Password, *input.NewPassword) {
			return nil, ErrSamePassword
		}
		hashed, err := util.HashPassword(*input.NewPassword)
		if err != nil {
			return nil, err
		}
		digest = &hashed
	}

	updated, err := s.users.UpdateAccount(ctx, user.ID, input.Name, input.City, input.State, input.Country, digest)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// UploadProfileImage normalizes the upload, stores it and records the stored
// URL on the account.
func (s *UserService) UploadProfileImage(ctx context.Context, userID int64, upload media.Upload) (string, error) {
	if s.storage == nil {
		return "", ErrStorageUnavailable
	}
	if s.maxImageBytes > 0 && upload.Size > s.maxImageBytes {
		return "", ErrImageTooLarge
	}

	result, err := s.processor.Process(ctx, upload, 0)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("users/%d/%s%s", userID, uuid.NewString(), extensionFor(result.ContentType))
	url, err := s.storage.Upload(ctx, s.profileBucket, objectName, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return "", err
	}

	if err := s.users.UpdateImageURL(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func normalizePagination(limit, offset int) (int, int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
