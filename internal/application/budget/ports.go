package budget

import (
	"context"

	"github.com/jhoicas/depcatalog-api/internal/domain/repository"
)

// BudgetTxRunner ejecuta fn dentro de una transacción con un repositorio de presupuesto atado a ella.
// Si fn devuelve error se hace rollback.
type BudgetTxRunner interface {
	RunBudget(ctx context.Context, fn func(repo repository.LockingBudgetRepository) error) error
}

// CompanyChecker valida que el tenant exista.
type CompanyChecker interface {
	EnsureExists(ctx context.Context, companyID string) error
}
