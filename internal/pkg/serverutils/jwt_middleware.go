// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"time"

	"collabhub-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NewJwtMiddleware validates the bearer token with the given HMAC secret and
// stores the "user_id" claim in ctx.Locals.
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		userID, err := ParseToken(secret, authHeader[7:])
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		ctx.Locals("user_id", userID.String())
		return ctx.Next()
	}
}

// ParseToken verifies tokenStr and returns the user id it was issued for.
func ParseToken(secret, tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperror.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apperror.Unauthenticated("invalid token claims")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, apperror.Unauthenticated("token missing user_id")
	}
	return uuid.Parse(userIDStr)
}

// IssueToken signs an HS256 access token for userID.
func IssueToken(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// CurrentUserID reads the authenticated user id set by the JWT middleware.
func CurrentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	switch v := ctx.Locals("user_id").(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, apperror.Unauthenticated("invalid user id")
		}
		return id, nil
	case uuid.UUID:
		return v, nil
	default:
		return uuid.Nil, apperror.Unauthenticated("unauthorized")
	}
}

// ParamUUID parses a uuid path parameter.
func ParamUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.InvalidArgument("invalid %s", name)
	}
	return id, nil
}
