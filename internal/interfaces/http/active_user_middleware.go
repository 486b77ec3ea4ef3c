package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
)

// activeChecker contrato mínimo para saber si el usuario del token sigue activo.
// Lo implementa *usecase.UserUseCase; la interfaz evita acoplar el middleware al caso de uso.
type activeChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// RequireActiveUser rechaza tokens de usuarios desactivados o eliminados después
// de emitido el token. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
//   - 401 Unauthorized → token sin user_id.
//   - 403 Forbidden → usuario inactivo o inexistente.
//   - 503 Service Unavailable → fallo de infraestructura al consultar el almacén.
func RequireActiveUser(checker activeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		active, err := checker.IsActive(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "USER_CHECK_FAILED",
				Message: "no se pudo verificar el usuario, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "USER_INACTIVE",
				Message: "el usuario está inactivo",
			})
		}
		return c.Next()
	}
}
