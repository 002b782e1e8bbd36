package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"time"

	"github.com/accounthub/Account_Hub_BackEnd/internal/repository/ports"
	"github.com/accounthub/Account_Hub_BackEnd/internal/util"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrNoPendingOTP         = errors.New("no pending reset code for this account")
	ErrOTPExpired           = errors.New("reset code has expired")
	ErrOTPMismatch          = errors.New("reset code does not match")
	ErrPasswordConfirmation = errors.New("new password and confirm password do not match")
)

// PasswordResetSender delivers the reset code to the account's mailbox.
// Delivery is fire-and-forget: the orchestrator stores the code before
// sending, and a send failure never rolls it back.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, otp string) error
}

// PasswordResetService runs the reset lifecycle: request a code, verify it,
// consume it while rotating the credential.
type PasswordResetService struct {
	users  ports.UserRepository
	store  OTPStore
	mailer PasswordResetSender
	ttl    time.Duration

	// echoOTP reproduces the legacy behavior of returning the raw code in
	// the request-reset response alongside the email. Off in production.
	echoOTP bool

	now func() time.Time
}

func NewPasswordResetService(users ports.UserRepository, store OTPStore, mailer PasswordResetSender, ttl time.Duration, echoOTP bool) *PasswordResetService {
	return &PasswordResetService{
		users:   users,
		store:   store,
		mailer:  mailer,
		ttl:     ttl,
		echoOTP: echoOTP,
		now:     time.Now,
	}
}

type ResetRequestResult struct {
	Message string
	// OTP is populated only when echoing is enabled.
	OTP string
}

// RequestReset issues a fresh code for the account, replacing any prior
// pending entry, and mails it to the account's address.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (*ResetRequestResult, error) {
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	code, err := util.GenerateOTP()
	if err != nil {
		return nil, err
	}
	s.store.Put(email, code, s.ttl)

	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, email, code); err != nil {
			log.Printf("password reset mail to %s failed: %v", email, err)
		}
	}

	result := &ResetRequestResult{Message: "OTP sent to the email"}
	if s.echoOTP {
		result.OTP = code
	}
	return result, nil
}

// VerifyOTP checks a submitted code against the pending entry without
// consuming it, so it is safe to call repeatedly before the change.
func (s *PasswordResetService) VerifyOTP(ctx context.Context, email, code string) error {
	_, err := s.pendingEntry(email, code)
	return err
}

// ChangePassword consumes the pending entry and rotates the credential. Any
// failure leaves both the entry and the stored credential untouched.
func (s *PasswordResetService) ChangePassword(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	if _, err := s.pendingEntry(email, code); err != nil {
		return err
	}

	if newPassword != confirmPassword {
		return ErrPasswordConfirmation
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return ErrAccountNotFound
		}
		return err
	}

	digest, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, digest); err != nil {
		return err
	}

	s.store.Remove(email)
	return nil
}

// pendingEntry resolves the stored entry for email and validates it against
// the submitted code. Expired entries are purged on read; the caller-visible
// outcome is the same whether or not the stale entry still existed.
func (s *PasswordResetService) pendingEntry(email, code string) (PendingReset, error) {
	entry, ok := s.store.Get(email)
	if !ok {
		return PendingReset{}, ErrNoPendingOTP
	}
	if s.now().After(entry.ExpiresAt) {
		s.store.Remove(email)
		return PendingReset{}, ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		return PendingReset{}, ErrOTPMismatch
	}
	return entry, nil
}
