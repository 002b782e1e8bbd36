package service

import (
	"context"
	"errors"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
	"github.com/accounthub/Account_Hub_BackEnd/internal/repository/ports"
	"github.com/accounthub/Account_Hub_BackEnd/internal/util"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login responses never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	tokens *util.JWTManager
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens *util.JWTManager) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens}
}

type LoginResult struct {
	Name        *string
	Email       string
	AccessToken string
	Role        string
}

// Login authenticates the credential pair and mints a bearer token whose
// subject is the account email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, _, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Name:        user.Name,
		Email:       user.Email,
		AccessToken: token,
		Role:        role.Name,
	}, nil
}

// Authenticate resolves a bearer token to the account it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	subject, ok := s.tokens.Validate(token)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByEmail(ctx, subject)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
