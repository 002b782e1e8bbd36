package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/Account_Hub_BackEnd/internal/service"
)

func postOTPVerify(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	store := service.NewMemoryOTPStore()
	store.Put("a@x.com", "482913", 15*time.Minute)
	resets := service.NewPasswordResetService(nil, store, nil, 15*time.Minute, false)

	e := echo.New()
	RegisterPasswordReset(e, resets)

	req := httptest.NewRequest(http.MethodPost, "/otp_verify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestVerifyOTPAcceptsNumericCode(t *testing.T) {
	rec := postOTPVerify(t, `{"email":"a@x.com","otp":482913}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a numeric otp, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestVerifyOTPAcceptsStringCode(t *testing.T) {
	rec := postOTPVerify(t, `{"email":"a@x.com","otp":"482913"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a string otp, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestVerifyOTPNumericCodeMismatch(t *testing.T) {
	rec := postOTPVerify(t, `{"email":"a@x.com","otp":111111}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a wrong code, got %d", rec.Code)
	}
}

func TestVerifyOTPRejectsNonCodeShapes(t *testing.T) {
	rec := postOTPVerify(t, `{"email":"a@x.com","otp":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a boolean otp, got %d", rec.Code)
	}
}
