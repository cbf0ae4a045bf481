package serverutils

import (
	"os"

	"doc-assistant-be/internal/identity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const identityLocal = "identity"

// IdentityMiddleware resolves the caller to an Identity. A valid bearer token
// wins; otherwise the X-Guest-ID header marks an anonymous guest.
func IdentityMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		rawId, ok := claims["user_id"].(float64)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		ctx.Locals(identityLocal, identity.Authenticated(int64(rawId)))
		return ctx.Next()
	}

	if guestToken := ctx.Get("X-Guest-ID"); guestToken != "" {
		ctx.Locals(identityLocal, identity.Guest(guestToken))
		return ctx.Next()
	}

	return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing credentials"))
}

// RequireUser rejects guests on routes that need a real account.
func RequireUser(ctx *fiber.Ctx) error {
	id, ok := ctx.Locals(identityLocal).(identity.Identity)
	if !ok || id.IsGuest() {
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Login required"))
	}
	return ctx.Next()
}

// IdentityFromCtx extracts the identity set by IdentityMiddleware.
func IdentityFromCtx(ctx *fiber.Ctx) (identity.Identity, bool) {
	id, ok := ctx.Locals(identityLocal).(identity.Identity)
	return id, ok
}
