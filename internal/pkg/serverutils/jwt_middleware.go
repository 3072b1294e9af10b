// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware validates the bearer token and exposes the caller's
// identity and tenant on the request context. A token without an org_id
// claim is rejected outright: downstream code derives the aggregation
// guard's tenant id from this value, and a missing tenant must fail
// before any query is built.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	orgId, ok := claims["org_id"].(string)
	if !ok || orgId == "" {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Token has no organization"})
	}

	ctx.Locals("user_id", claims["user_id"])
	ctx.Locals("org_id", orgId)
	ctx.Locals("role", claims["role"])
	return ctx.Next()
}

// AdminOnly allows only platform-admin tokens through. Cross-tenant
// reporting endpoints sit behind this.
func AdminOnly(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)
	if role != "platform_admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
	}
	return ctx.Next()
}
