package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/volt-ev/fleet-console/internal/config"
	"github.com/volt-ev/fleet-console/internal/fleetapi"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthPassesOperatorIdentityAndToken(t *testing.T) {
	signed := signToken(t, Claims{
		UserID: "op-7",
		Role:   "fleet_admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	var gotID, gotRole, gotToken string
	handler := Auth(config.JWT{Secret: testSecret})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetOperatorID(r.Context())
		gotRole, _ = GetOperatorRole(r.Context())
		gotToken, _ = fleetapi.TokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/count", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "op-7" || gotRole != "fleet_admin" {
		t.Fatalf("unexpected identity: id=%q role=%q", gotID, gotRole)
	}
	if gotToken != signed {
		t.Fatalf("expected raw token forwarded for the fleet client")
	}
}

func TestAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	handler := Auth(config.JWT{Secret: testSecret})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"", "Token abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/stations", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	signed := signToken(t, Claims{
		UserID: "op-7",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	handler := Auth(config.JWT{Secret: testSecret})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stations", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "op-7"})
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	handler := Auth(config.JWT{Secret: testSecret})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stations", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong signing key, got %d", rec.Code)
	}
}
