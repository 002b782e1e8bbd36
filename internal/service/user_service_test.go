package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
	"github.com/accounthub/Account_Hub_BackEnd/internal/media"
	"github.com/accounthub/Account_Hub_BackEnd/internal/util"
)

type fakeObjectStorage struct {
	bucket      string
	objectName  string
	contentType string
	size        int64
	url         string
	err         error
}

func (f *fakeObjectStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	f.bucket = bucket
	f.objectName = objectName
	f.contentType = contentType
	f.size = size
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	return f.url, f.err
}

type fakeProcessor struct {
	err error
}

func (f *fakeProcessor) Process(ctx context.Context, upload media.Upload, maxDimension int) (*media.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, err
	}
	return &media.Result{Bytes: data, ContentType: upload.ContentType}, nil
}

type fakeRegistrationMailer struct {
	emails []string
	err    error
}

func (f *fakeRegistrationMailer) SendRegistrationConfirmation(ctx context.Context, email string) error {
	f.emails = append(f.emails, email)
	return f.err
}

func strPtr(s string) *string { return &s }

func TestUserRegisterSuccess(t *testing.T) {
	users := &fakeUserRepo{createResult: &domain.User{ID: 1, Email: "new@example.com", RoleID: domain.RoleMember}}
	mailer := &fakeRegistrationMailer{}
	svc := NewUserService(users, nil, &fakeProcessor{}, mailer, "profiles", 0)

	created, err := svc.Register(context.Background(), UserRegisterInput{
		Name:     strPtr("New User"),
		Email:    "new@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected created user id 1, got %d", created.ID)
	}
	if users.createInput.email != "new@example.com" {
		t.Fatalf("expected create for new@example.com, got %s", users.createInput.email)
	}
	if users.createInput.roleID != domain.RoleMember {
		t.Fatalf("expected new accounts to get the member role, got %d", users.createInput.roleID)
	}
	if users.createInput.digest == "s3cret-pass" {
		t.Fatalf("expected the password to be hashed before storage")
	}
	if !util.VerifyPassword(users.createInput.digest, "s3cret-pass") {
		t.Fatalf("expected the stored digest to verify the password")
	}
	if len(mailer.emails) != 1 || mailer.emails[0] != "new@example.com" {
		t.Fatalf("expected one confirmation mail, got %v", mailer.emails)
	}
}

func TestUserRegisterLongPassword(t *testing.T) {
	users := &fakeUserRepo{createResult: &domain.User{ID: 1, Email: "new@example.com"}}
	svc := NewUserService(users, nil, &fakeProcessor{}, nil, "profiles", 0)

	long := strings.Repeat("p", 100)
	if _, err := svc.Register(context.Background(), UserRegisterInput{Email: "new@example.com", Password: long}); err != nil {
		t.Fatalf("Register returned error for a long password: %v", err)
	}
	if !util.VerifyPassword(users.createInput.digest, long) {
		t.Fatalf("expected the stored digest to verify the long password")
	}
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{createErr: &pgconn.PgError{Code: "23505"}}
	svc := NewUserService(users, nil, &fakeProcessor{}, nil, "profiles", 0)

	_, err := svc.Register(context.Background(), UserRegisterInput{Email: "dup@example.com", Password: "pass"})
	if err != ErrEmailAlreadyRegistered {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestUserRegisterSurvivesMailFailure(t *testing.T) {
	users := &fakeUserRepo{createResult: &domain.User{ID: 1, Email: "new@example.com"}}
	mailer := &fakeRegistrationMailer{err: errors.New("smtp down")}
	svc := NewUserService(users, nil, &fakeProcessor{}, mailer, "profiles", 0)

	if _, err := svc.Register(context.Background(), UserRegisterInput{Email: "new@example.com", Password: "pass"}); err != nil {
		t.Fatalf("expected registration to succeed despite the mail failure, got %v", err)
	}
}

func TestUserGetNotFound(t *testing.T) {
	users := &fakeUserRepo{findByIDErr: sql.ErrNoRows}
	svc := NewUserService(users, nil, &fakeProcessor{}, nil, "profiles", 0)

	if _, err := svc.Get(context.Background(), 7); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserListNormalizesPagination(t *testing.T) {
	users := &fakeUserRepo{listResult: []domain.User{{ID: 1}}, countResult: 1}
	svc := NewUserService(users, nil, &fakeProcessor{}, nil, "profiles", 0)

	result, err := svc.List(context.Background(), 0, -5, "", "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if users.listInput.limit != 20 || users.listInput.offset != 0 {
		t.Fatalf("expected defaults 20/0, got %d/%d", users.listInput.limit, users.listInput.offset)
	}
	if result.Limit != 20 || result.Offset != 0 {
		t.Fatalf("expected normalized meta 20/0, got %d/%d", result.Limit, result.Offset)
	}
	if result.Total != 1 || len(result.Users) != 1 {
		t.Fatalf("expected one user with total 1")
	}

	if _, err := svc.List(context.Background(), 1000, 40, "email", "desc"); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if users.listInput.limit != 100 || users.listInput.offset != 40 {
		t.Fatalf("expected capped limit 100 and offset 40, got %d/%d", users.listInput.limit, users.listInput.offset)
	}
}

func TestUserUpdateRejectsSamePassword(t *testing.T) {
	user := testUser(t, "user@example.com", "current-pass", domain.RoleMember)
	users := &fakeUserRepo{}
	svc := NewUserService(users, nil, &fakeProcessor{}, nil, "profiles", 0)

	_, err := svc.Update(context.Background(), user, UserUpdateInput{NewPassword: strPtr("current-pass")})
	if err != ErrSamePassword {
		t.Fatalf("expected ErrSamePassword, got %v", err)
	}
	if users.updatePasswordCalls != 0 {
		t.Fatalf("expected no credential update")
	}
}

func TestUserUpdateRotatesPasswordAndProfile(t *testing.T) {
	user := testUser(t, "user@example.com", "current-pass", domain.RoleMember)
	users := &fakeUserRepo{updateAccountResult: &domain.User{ID: user.ID, Email: user.Email}}
	svc := NewUserService(users, nil, &fakeProcessor{}, nil, "profiles", 0)

	updated, err := svc.Update(context.Background(), user, UserUpdateInput{
		Name:        strPtr("Renamed"),
		NewPassword: strPtr("brand-new-pass"),
		City:        strPtr("Oslo"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated == nil {
		t.Fatalf("expected the updated user to be returned")
	}
	if users.updateAccountCalls != 1 {
		t.Fatalf("expected a single account write, got %d", users.updateAccountCalls)
	}
	if users.updateAccountInput.id != user.ID {
		t.Fatalf("expected update for user %d, got %d", user.ID, users.updateAccountInput.id)
	}
	if users.updateAccountInput.name == nil || *users.updateAccountInput.name != "Renamed" {
		t.Fatalf("expected the new name to be passed through")
	}
	if users.updateAccountInput.digest == nil || !util.VerifyPassword(*users.updateAccountInput.digest, "brand-new-pass") {
		t.Fatalf("expected the same write to carry a digest verifying the new password")
	}
}

func TestUserUpdateWithoutPasswordLeavesCredentialAlone(t *testing.T) {
	user := testUser(t, "user@example.com", "current-pass", domain.RoleMember)
	users := &fakeUserRepo{updateAccountResult: &domain.User{ID: user.ID, Email: user.Email}}
	svc := NewUserService(users, nil, &fakeProcessor{}, nil, "profiles", 0)

	if _, err := svc.Update(context.Background(), user, UserUpdateInput{Name: strPtr("Renamed")}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if users.updateAccountInput.digest != nil {
		t.Fatalf("expected no credential rotation without a new password")
	}
}

func TestUserUpdateFailureLeavesNoPartialWrite(t *testing.T) {
	user := testUser(t, "user@example.com", "current-pass", domain.RoleMember)
	users := &fakeUserRepo{updateAccountErr: sql.ErrNoRows}
	svc := NewUserService(users, nil, &fakeProcessor{}, nil, "profiles", 0)

	_, err := svc.Update(context.Background(), user, UserUpdateInput{
		Name:        strPtr("Renamed"),
		NewPassword: strPtr("brand-new-pass"),
	})
	if err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if users.updatePasswordCalls != 0 {
		t.Fatalf("expected no separate credential write on failure")
	}
	if users.updateAccountCalls != 1 {
		t.Fatalf("expected exactly one attempted write, got %d", users.updateAccountCalls)
	}
}

func TestUserDeleteNotFound(t *testing.T) {
	users := &fakeUserRepo{deleteErr: sql.ErrNoRows}
	svc := NewUserService(users, nil, &fakeProcessor{}, nil, "profiles", 0)

	if err := svc.Delete(context.Background(), 7); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUploadProfileImage(t *testing.T) {
	users := &fakeUserRepo{}
	storage := &fakeObjectStorage{url: "https://cdn.example.com/profiles/users/42/pic.jpg"}
	svc := NewUserService(users, storage, &fakeProcessor{}, nil, "profiles", 1024)

	upload := media.Upload{
		Reader:      strings.NewReader("jpeg-bytes"),
		Size:        10,
		FileName:    "pic.jpg",
		ContentType: "image/jpeg",
	}
	url, err := svc.UploadProfileImage(context.Background(), 42, upload)
	if err != nil {
		t.Fatalf("UploadProfileImage returned error: %v", err)
	}
	if url != storage.url {
		t.Fatalf("expected the stored URL to be returned, got %s", url)
	}
	if storage.bucket != "profiles" {
		t.Fatalf("expected upload into the profiles bucket, got %s", storage.bucket)
	}
	if !strings.HasPrefix(storage.objectName, "users/42/") {
		t.Fatalf("expected the object name to be scoped to the user, got %s", storage.objectName)
	}
	if !strings.HasSuffix(storage.objectName, ".jpg") {
		t.Fatalf("expected a .jpg object name, got %s", storage.objectName)
	}
	if users.updateImageInput.id != 42 || users.updateImageInput.url != storage.url {
		t.Fatalf("expected the URL to be recorded on the account")
	}
}

func TestUploadProfileImageTooLarge(t *testing.T) {
	storage := &fakeObjectStorage{url: "https://cdn.example.com/x"}
	svc := NewUserService(&fakeUserRepo{}, storage, &fakeProcessor{}, nil, "profiles", 8)

	upload := media.Upload{Reader: strings.NewReader("way too many bytes"), Size: 18, ContentType: "image/jpeg"}
	if _, err := svc.UploadProfileImage(context.Background(), 42, upload); err != ErrImageTooLarge {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestUploadProfileImageWithoutStorage(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, nil, &fakeProcessor{}, nil, "profiles", 0)

	upload := media.Upload{Reader: strings.NewReader("x"), Size: 1, ContentType: "image/jpeg"}
	if _, err := svc.UploadProfileImage(context.Background(), 42, upload); err != ErrStorageUnavailable {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
