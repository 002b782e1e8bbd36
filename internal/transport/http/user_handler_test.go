package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
)

func TestParsePagination(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/list?limit=5&offset=30", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	limit, offset := parsePagination(c, 20, 0)
	if limit != 5 || offset != 30 {
		t.Fatalf("expected 5/30, got %d/%d", limit, offset)
	}
}

func TestParsePaginationDefaults(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/list", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	limit, offset := parsePagination(c, 20, 0)
	if limit != 20 || offset != 0 {
		t.Fatalf("expected defaults 20/0, got %d/%d", limit, offset)
	}
}

func TestParsePaginationIgnoresGarbage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/list?limit=abc&offset=xyz", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	limit, offset := parsePagination(c, 20, 0)
	if limit != 20 || offset != 0 {
		t.Fatalf("expected defaults for non-numeric params, got %d/%d", limit, offset)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 42 ")
	if err != nil {
		t.Fatalf("parseID returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	for _, raw := range []string{"", "abc", "0", "-7"} {
		if _, err := parseID(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestToUserResponseOmitsCredential(t *testing.T) {
	name := "Test User"
	user := &domain.User{
		ID:       42,
		Name:     &name,
		Email:    "user@example.com",
		Password: "$2a$10$digest",
		RoleID:   domain.RoleMember,
	}

	resp := toUserResponse(user)
	if resp.ID != 42 || resp.Email != "user@example.com" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Name == nil || *resp.Name != name {
		t.Fatalf("expected name to be carried over")
	}
	if resp.RoleID != domain.RoleMember {
		t.Fatalf("expected role id %d, got %d", domain.RoleMember, resp.RoleID)
	}
}
