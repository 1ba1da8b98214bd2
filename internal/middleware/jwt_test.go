package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ymatsuda/cleaning-schedule/internal/utils"
)

func runJWT(t *testing.T, secret, authHeader string) (*httptest.ResponseRecorder, uint64) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/lists", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID uint64
	h := JWTAuth(secret)(func(c echo.Context) error {
		gotUserID, _ = c.Get("user_id").(uint64)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, gotUserID
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("test-secret", 42, 5)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	rec, uid := runJWT(t, "test-secret", "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if uid != 42 {
		t.Errorf("user_id = %d, want 42", uid)
	}
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "test-secret", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 42, 5)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	rec, _ := runJWT(t, "test-secret", "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	rec, _ := runJWT(t, "test-secret", "Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
