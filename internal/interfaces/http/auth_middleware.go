package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/jwt"
)

// LocalAccess key del contexto de acceso en Fiber Locals.
const LocalAccess = "access_context"

// AuthMiddleware valida el Bearer Token JWT y deja en Locals el contexto de
// acceso derivado de los claims. Un rol desconocido en el token degrada a
// seller sin tiendas (default cerrado) en scope.FromClaims.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalAccess, scope.FromClaims(claims.UserID, claims.Role, claims.StoreIDs))
		return c.Next()
	}
}

// GetAccess devuelve el contexto de acceso (después del middleware de auth).
// Si falta, devuelve el contexto cerrado por defecto.
func GetAccess(c *fiber.Ctx) scope.AccessContext {
	v := c.Locals(LocalAccess)
	if v == nil {
		return scope.AccessContext{Role: entity.RoleSeller}
	}
	ac, ok := v.(scope.AccessContext)
	if !ok {
		return scope.AccessContext{Role: entity.RoleSeller}
	}
	return ac
}

// RequireRole corta con 403 si el rol del usuario no está en la lista.
// Los casos de uso vuelven a validar; esto solo evita trabajo inútil.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac := GetAccess(c)
		for _, r := range roles {
			if ac.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a esta ruta"})
	}
}
