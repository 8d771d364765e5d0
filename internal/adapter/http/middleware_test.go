package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/domain"
)

var testSecret = []byte("test-secret")

func identityEcho(t *testing.T, wantRestaurant uuid.UUID, wantActor domain.Actor) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := RestaurantIDFromContext(r.Context())
		if !ok {
			t.Error("restaurant id missing from context")
		}
		if id != wantRestaurant {
			t.Errorf("restaurant id = %s, want %s", id, wantRestaurant)
		}
		if actor := ActorFromContext(r.Context()); actor != wantActor {
			t.Errorf("actor = %s, want %s", actor, wantActor)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	restaurantID := uuid.New()
	token, err := GenerateToken(testSecret, restaurantID, domain.ActorAdmin, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	handler := AuthMiddleware(testSecret)(identityEcho(t, restaurantID, domain.ActorAdmin))

	r := httptest.NewRequest(http.MethodGet, "/order-requests", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	restaurantID := uuid.New()
	token, err := GenerateToken(testSecret, restaurantID, domain.ActorRestaurant, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	handler := AuthMiddleware(testSecret)(identityEcho(t, restaurantID, domain.ActorRestaurant))

	r := httptest.NewRequest(http.MethodGet, "/ws/notifications?token="+token, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order-requests", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	token, _ := GenerateToken([]byte("other-secret"), uuid.New(), domain.ActorRestaurant, time.Hour)

	handler := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("handler must not run with a forged token")
	}))

	r := httptest.NewRequest(http.MethodGet, "/order-requests", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	token, _ := GenerateToken(testSecret, uuid.New(), domain.ActorRestaurant, -time.Minute)

	handler := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("handler must not run with an expired token")
	}))

	r := httptest.NewRequest(http.MethodGet, "/order-requests", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareInvalidRole(t *testing.T) {
	token, _ := GenerateToken(testSecret, uuid.New(), domain.ActorSystem, time.Hour)

	handler := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("handler must not run for a non-operator role")
	}))

	r := httptest.NewRequest(http.MethodGet, "/order-requests", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(logger.NewNop())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order-requests", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
