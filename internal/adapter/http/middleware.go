package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/domain"
)

type contextKey string

const (
	ctxRestaurantID contextKey = "restaurant_id"
	ctxActor        contextKey = "actor"
)

// Claims carries the authenticated restaurant identity. The restaurant id is
// always taken from here, never from a request body.
type Claims struct {
	RestaurantID string `json:"restaurant_id"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed operator token. Used by provisioning
// tooling and tests.
func GenerateToken(secret []byte, restaurantID uuid.UUID, role domain.Actor, ttl time.Duration) (string, error) {
	claims := Claims{
		RestaurantID: restaurantID.String(),
		Role:         string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// AuthMiddleware validates the bearer token and injects the restaurant
// identity into the request context. WebSocket clients may pass the token as
// a query parameter instead of a header.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				respondMessage(w, http.StatusUnauthorized, "authorization required")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				respondMessage(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			restaurantID, err := uuid.Parse(claims.RestaurantID)
			if err != nil {
				respondMessage(w, http.StatusUnauthorized, "invalid restaurant identity")
				return
			}

			actor := domain.Actor(claims.Role)
			if actor != domain.ActorRestaurant && actor != domain.ActorAdmin {
				respondMessage(w, http.StatusUnauthorized, "invalid role")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), restaurantID, actor)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// ContextWithIdentity attaches the authenticated identity to a context.
func ContextWithIdentity(ctx context.Context, restaurantID uuid.UUID, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, ctxRestaurantID, restaurantID)
	return context.WithValue(ctx, ctxActor, actor)
}

func RestaurantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxRestaurantID).(uuid.UUID)
	return id, ok
}

func ActorFromContext(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(ctxActor).(domain.Actor); ok {
		return actor
	}
	return domain.ActorRestaurant
}

func LoggingMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			lgr.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), map[string]interface{}{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			next.ServeHTTP(w, r)

			lgr.Debug("http_response", "Request completed", map[string]interface{}{
				"request_id":  requestID,
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

func RecoveryMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					lgr.Error("panic_recovered", "Panic recovered", map[string]interface{}{
						"path": r.URL.Path,
					}, fmt.Errorf("%v", rec))
					respondMessage(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
