package repository

import (
	"context"

	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
)

// BudgetRepository puerto de persistencia del presupuesto (uno por empresa).
// FindByCompanyID devuelve (nil, nil) si la empresa aún no tiene presupuesto.
type BudgetRepository interface {
	FindByCompanyID(ctx context.Context, companyID string) (*entity.Budget, error)
	ExistsByCompanyID(ctx context.Context, companyID string) (bool, error)
	// Save inserta o reemplaza total y moneda. Nunca escribe allocated_cents.
	// Devuelve domain.ErrConflict si ya existe otro presupuesto para la empresa.
	Save(ctx context.Context, budget *entity.Budget) error
}

// LockingBudgetRepository variante atada a una transacción que permite bloquear la fila.
type LockingBudgetRepository interface {
	BudgetRepository
	FindByCompanyIDForUpdate(ctx context.Context, companyID string) (*entity.Budget, error)
}
