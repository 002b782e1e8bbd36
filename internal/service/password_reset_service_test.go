package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/accounthub/Account_Hub_BackEnd/internal/util"
)

type fakeResetMailer struct {
	emails []string
	codes  []string
	err    error
}

func (f *fakeResetMailer) SendPasswordReset(ctx context.Context, email, otp string) error {
	f.emails = append(f.emails, email)
	f.codes = append(f.codes, otp)
	return f.err
}

func newResetService(t *testing.T, users *fakeUserRepo, mailer PasswordResetSender, echoOTP bool) (*PasswordResetService, *MemoryOTPStore) {
	t.Helper()
	store := NewMemoryOTPStore()
	return NewPasswordResetService(users, store, mailer, 15*time.Minute, echoOTP), store
}

func TestRequestResetUnknownAccount(t *testing.T) {
	users := &fakeUserRepo{findByEmailErr: sql.ErrNoRows}
	mailer := &fakeResetMailer{}
	svc, store := newResetService(t, users, mailer, false)

	if _, err := svc.RequestReset(context.Background(), "missing@example.com"); err != ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, ok := store.Get("missing@example.com"); ok {
		t.Fatalf("expected no entry to be stored for an unknown account")
	}
	if len(mailer.emails) != 0 {
		t.Fatalf("expected no mail for an unknown account")
	}
}

func TestRequestResetStoresAndMails(t *testing.T) {
	user := testUser(t, "user@example.com", "old-pass", 3)
	users := &fakeUserRepo{findByEmailResult: user}
	mailer := &fakeResetMailer{}
	svc, store := newResetService(t, users, mailer, false)

	result, err := svc.RequestReset(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	if result.Message != "OTP sent to the email" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.OTP != "" {
		t.Fatalf("expected code to stay out of the response when echoing is off")
	}

	entry, ok := store.Get("user@example.com")
	if !ok {
		t.Fatalf("expected a pending entry after the request")
	}
	if len(entry.Code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", entry.Code)
	}
	if len(mailer.emails) != 1 || mailer.emails[0] != "user@example.com" {
		t.Fatalf("expected one mail to user@example.com, got %v", mailer.emails)
	}
	if mailer.codes[0] != entry.Code {
		t.Fatalf("expected the mailed code to match the stored one")
	}
}

func TestRequestResetEchoesCodeWhenEnabled(t *testing.T) {
	user := testUser(t, "user@example.com", "old-pass", 3)
	users := &fakeUserRepo{findByEmailResult: user}
	svc, store := newResetService(t, users, &fakeResetMailer{}, true)

	result, err := svc.RequestReset(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	entry, ok := store.Get("user@example.com")
	if !ok {
		t.Fatalf("expected a pending entry after the request")
	}
	if result.OTP != entry.Code {
		t.Fatalf("expected the echoed code to match the stored one")
	}
}

func TestRequestResetSurvivesMailFailure(t *testing.T) {
	user := testUser(t, "user@example.com", "old-pass", 3)
	users := &fakeUserRepo{findByEmailResult: user}
	mailer := &fakeResetMailer{err: errors.New("smtp down")}
	svc, store := newResetService(t, users, mailer, false)

	if _, err := svc.RequestReset(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("expected the request to succeed despite the mail failure, got %v", err)
	}
	if _, ok := store.Get("user@example.com"); !ok {
		t.Fatalf("expected the entry to remain stored despite the mail failure")
	}
}

func TestRequestResetReplacesPreviousCode(t *testing.T) {
	user := testUser(t, "user@example.com", "old-pass", 3)
	users := &fakeUserRepo{findByEmailResult: user}
	svc, store := newResetService(t, users, &fakeResetMailer{}, false)

	if _, err := svc.RequestReset(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	first, _ := store.Get("user@example.com")

	if _, err := svc.RequestReset(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	second, _ := store.Get("user@example.com")

	if err := svc.VerifyOTP(context.Background(), "user@example.com", second.Code); err != nil {
		t.Fatalf("expected the latest code to verify, got %v", err)
	}
	if first.Code != second.Code {
		if err := svc.VerifyOTP(context.Background(), "user@example.com", first.Code); err != ErrOTPMismatch {
			t.Fatalf("expected the replaced code to be rejected, got %v", err)
		}
	}
}

func TestVerifyOTPWithoutRequest(t *testing.T) {
	svc, _ := newResetService(t, &fakeUserRepo{}, &fakeResetMailer{}, false)

	if err := svc.VerifyOTP(context.Background(), "user@example.com", "123456"); err != ErrNoPendingOTP {
		t.Fatalf("expected ErrNoPendingOTP, got %v", err)
	}
}

func TestVerifyOTPMismatchKeepsEntry(t *testing.T) {
	svc, store := newResetService(t, &fakeUserRepo{}, &fakeResetMailer{}, false)
	store.Put("user@example.com", "123456", 15*time.Minute)

	if err := svc.VerifyOTP(context.Background(), "user@example.com", "654321"); err != ErrOTPMismatch {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}
	if _, ok := store.Get("user@example.com"); !ok {
		t.Fatalf("expected the entry to survive a mismatch")
	}
	if err := svc.VerifyOTP(context.Background(), "user@example.com", "123456"); err != nil {
		t.Fatalf("expected the correct code to verify after a mismatch, got %v", err)
	}
}

func TestVerifyOTPIsRepeatable(t *testing.T) {
	svc, store := newResetService(t, &fakeUserRepo{}, &fakeResetMailer{}, false)
	store.Put("user@example.com", "123456", 15*time.Minute)

	for i := 0; i < 3; i++ {
		if err := svc.VerifyOTP(context.Background(), "user@example.com", "123456"); err != nil {
			t.Fatalf("verification %d returned error: %v", i, err)
		}
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, store := newResetService(t, &fakeUserRepo{}, &fakeResetMailer{}, false)
	store.Put("user@example.com", "123456", 15*time.Minute)
	svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	if err := svc.VerifyOTP(context.Background(), "user@example.com", "123456"); err != ErrOTPExpired {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
	if _, ok := store.Get("user@example.com"); ok {
		t.Fatalf("expected the expired entry to be purged")
	}
	if err := svc.VerifyOTP(context.Background(), "user@example.com", "123456"); err != ErrNoPendingOTP {
		t.Fatalf("expected ErrNoPendingOTP after the purge, got %v", err)
	}
}

func TestChangePasswordSuccessConsumesEntry(t *testing.T) {
	user := testUser(t, "user@example.com", "old-pass", 3)
	users := &fakeUserRepo{findByEmailResult: user}
	svc, store := newResetService(t, users, &fakeResetMailer{}, false)
	store.Put("user@example.com", "123456", 15*time.Minute)

	if err := svc.ChangePassword(context.Background(), "user@example.com", "123456", "new-pass", "new-pass"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if users.updatePasswordCalls != 1 {
		t.Fatalf("expected one credential update, got %d", users.updatePasswordCalls)
	}
	if users.updatePasswordInput.id != user.ID {
		t.Fatalf("expected update for user %d, got %d", user.ID, users.updatePasswordInput.id)
	}
	if !util.VerifyPassword(users.updatePasswordInput.digest, "new-pass") {
		t.Fatalf("expected the stored digest to verify the new password")
	}
	if _, ok := store.Get("user@example.com"); ok {
		t.Fatalf("expected the entry to be consumed")
	}

	err := svc.ChangePassword(context.Background(), "user@example.com", "123456", "other-pass", "other-pass")
	if err != ErrNoPendingOTP {
		t.Fatalf("expected a second change to fail with ErrNoPendingOTP, got %v", err)
	}
}

func TestChangePasswordAcceptsLongPassword(t *testing.T) {
	user := testUser(t, "user@example.com", "old-pass", 3)
	users := &fakeUserRepo{findByEmailResult: user}
	svc, store := newResetService(t, users, &fakeResetMailer{}, false)
	store.Put("user@example.com", "123456", 15*time.Minute)

	long := strings.Repeat("q", 128)
	if err := svc.ChangePassword(context.Background(), "user@example.com", "123456", long, long); err != nil {
		t.Fatalf("ChangePassword returned error for a long password: %v", err)
	}
	if !util.VerifyPassword(users.updatePasswordInput.digest, long) {
		t.Fatalf("expected the stored digest to verify the long password")
	}
}

func TestChangePasswordConfirmationMismatch(t *testing.T) {
	user := testUser(t, "user@example.com", "old-pass", 3)
	users := &fakeUserRepo{findByEmailResult: user}
	svc, store := newResetService(t, users, &fakeResetMailer{}, false)
	store.Put("user@example.com", "123456", 15*time.Minute)

	err := svc.ChangePassword(context.Background(), "user@example.com", "123456", "new-pass", "different")
	if err != ErrPasswordConfirmation {
		t.Fatalf("expected ErrPasswordConfirmation, got %v", err)
	}
	if users.updatePasswordCalls != 0 {
		t.Fatalf("expected no credential update on a confirmation mismatch")
	}
	if _, ok := store.Get("user@example.com"); !ok {
		t.Fatalf("expected the entry to survive a confirmation mismatch")
	}
}

func TestChangePasswordWrongCode(t *testing.T) {
	user := testUser(t, "user@example.com", "old-pass", 3)
	users := &fakeUserRepo{findByEmailResult: user}
	svc, store := newResetService(t, users, &fakeResetMailer{}, false)
	store.Put("user@example.com", "123456", 15*time.Minute)

	err := svc.ChangePassword(context.Background(), "user@example.com", "999999", "new-pass", "new-pass")
	if err != ErrOTPMismatch {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}
	if users.updatePasswordCalls != 0 {
		t.Fatalf("expected no credential update on a code mismatch")
	}
	if _, ok := store.Get("user@example.com"); !ok {
		t.Fatalf("expected the entry to survive a code mismatch")
	}
}

func TestChangePasswordExpiredCode(t *testing.T) {
	user := testUser(t, "user@example.com", "old-pass", 3)
	users := &fakeUserRepo{findByEmailResult: user}
	svc, store := newResetService(t, users, &fakeResetMailer{}, false)
	store.Put("user@example.com", "123456", 15*time.Minute)
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }

	err := svc.ChangePassword(context.Background(), "user@example.com", "123456", "new-pass", "new-pass")
	if err != ErrOTPExpired {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
	if users.updatePasswordCalls != 0 {
		t.Fatalf("expected no credential update for an expired code")
	}
}
