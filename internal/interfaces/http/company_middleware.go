package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/depcatalog-api/internal/application/dto"
	"github.com/jhoicas/depcatalog-api/internal/domain"
)

// companyChecker contrato mínimo del middleware de tenant.
// Lo implementa *usecase.CompanyUseCase; el uso de interfaz evita el import circular.
type companyChecker interface {
	EnsureExists(ctx context.Context, companyID string) error
}

// RequireCompany verifica que la empresa del token siga existiendo. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay company_id en el contexto.
//   - 403 si la empresa del token no existe.
//   - 503 si falla la consulta.
func RequireCompany(checker companyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}
		if err := checker.EnsureExists(c.UserContext(), companyID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:    "COMPANY_NOT_FOUND",
					Message: "la empresa del token no existe",
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "COMPANY_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}
		return c.Next()
	}
}
