package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/depcatalog-api/internal/domain"
	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
	"github.com/jhoicas/depcatalog-api/internal/domain/repository"
)

var _ repository.LockingBudgetRepository = (*BudgetRepo)(nil)

const budgetColumns = `id, company_id, total_cents, allocated_cents, currency, created_at, updated_at`

// BudgetRepo presupuesto por empresa sobre PostgreSQL. allocated_cents lo escribe otro
// subsistema; aquí solo se lee.
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador. Pasar pool o tx (Querier); FOR UPDATE solo tiene efecto en tx.
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

// FindByCompanyID devuelve (nil, nil) si no hay presupuesto.
func (r *BudgetRepo) FindByCompanyID(ctx context.Context, companyID string) (*entity.Budget, error) {
	b, err := r.getOne(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// FindByCompanyIDForUpdate bloquea la fila hasta el fin de la transacción.
func (r *BudgetRepo) FindByCompanyIDForUpdate(ctx context.Context, companyID string) (*entity.Budget, error) {
	b, err := r.getOne(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE company_id = $1 FOR UPDATE`, companyID)
	if err != nil {
		return nil, fmt.Errorf("lock budget: %w", err)
	}
	return b, nil
}

// ExistsByCompanyID informa si la empresa ya tiene presupuesto.
func (r *BudgetRepo) ExistsByCompanyID(ctx context.Context, companyID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM budgets WHERE company_id = $1)`, companyID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists budget: %w", err)
	}
	return ok, nil
}

// Save inserta o actualiza total y moneda por id. Otro presupuesto de la misma empresa
// (índice único en company_id) → domain.ErrConflict.
func (r *BudgetRepo) Save(ctx context.Context, b *entity.Budget) error {
	const query = `
		INSERT INTO budgets (id, company_id, total_cents, allocated_cents, currency, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		   SET total_cents = EXCLUDED.total_cents,
		       currency    = EXCLUDED.currency,
		       updated_at  = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		b.ID(), b.CompanyID(), b.TotalCents(), b.Currency(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: presupuesto duplicado para la empresa", domain.ErrConflict)
		}
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

func (r *BudgetRepo) getOne(ctx context.Context, query, companyID string) (*entity.Budget, error) {
	var (
		id, company, currency string
		total, allocated      int64
		createdAt, updatedAt  time.Time
	)
	err := r.q.QueryRow(ctx, query, companyID).Scan(&id, &company, &total, &allocated, &currency, &createdAt, &updatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return entity.ReconstituteBudget(id, company, total, allocated, currency, createdAt, updatedAt)
}
