package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/depcatalog-api/internal/application/budget"
	"github.com/jhoicas/depcatalog-api/internal/application/dto"
)

// BudgetHandler presupuesto de la empresa del token.
type BudgetHandler struct {
	uc *budget.UseCase
}

// NewBudgetHandler construye el handler de presupuesto.
func NewBudgetHandler(uc *budget.UseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc}
}

// Get godoc
// @Summary      Resumen del presupuesto
// @Description  Si la empresa no tiene presupuesto responde exists=false con ceros.
// @Tags         budget
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BudgetSummaryResponse
// @Router       /api/budget [get]
func (h *BudgetHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Crear presupuesto
// @Tags         budget
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SetBudgetRequest  true  "total_cents, currency"
// @Success      201   {object}  dto.BudgetSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/budget [post]
func (h *BudgetHandler) Set(c *fiber.Ctx) error {
	var in dto.SetBudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Set(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar total del presupuesto
// @Description  Un total menor a lo asignado se guarda y se marca is_lower_than_allocations.
// @Tags         budget
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateBudgetRequest  true  "total_cents, currency"
// @Success      200   {object}  dto.UpdateBudgetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/budget [put]
func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
