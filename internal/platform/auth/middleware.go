package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/apperr"
)

type contextKey string

const (
	DoctorIDKey    contextKey = "doctor_id"
	DoctorEmailKey contextKey = "doctor_email"
)

// JWTMiddleware requires a valid "Authorization: Bearer <token>" header and
// stores the authenticated doctor in the request context.
func JWTMiddleware(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperr.Auth("Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return apperr.Auth("Invalid authorization format")
			}

			claims, err := v.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return apperr.Auth("Invalid or expired token")
			}

			ctx := WithDoctor(c.Request().Context(), claims.DoctorID, claims.Email)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(string(DoctorIDKey), claims.DoctorID)

			return next(c)
		}
	}
}

// WithDoctor returns ctx carrying the authenticated doctor.
func WithDoctor(ctx context.Context, id int64, email string) context.Context {
	ctx = context.WithValue(ctx, DoctorIDKey, id)
	return context.WithValue(ctx, DoctorEmailKey, email)
}

// DoctorIDFromContext returns the authenticated doctor id, if any.
func DoctorIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(DoctorIDKey).(int64)
	return id, ok
}

func DoctorEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(DoctorEmailKey).(string)
	return email
}
