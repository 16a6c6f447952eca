// Package budget casos de uso del presupuesto por empresa: crear, reemplazar el total y resumir.
package budget

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depcatalog-api/internal/application/dto"
	"github.com/jhoicas/depcatalog-api/internal/domain"
	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
	"github.com/jhoicas/depcatalog-api/internal/domain/ledger"
	"github.com/jhoicas/depcatalog-api/internal/domain/repository"
	"github.com/jhoicas/depcatalog-api/pkg/logger"
)

// UseCase orquesta el ledger puro con el almacenamiento. Sin estado propio.
type UseCase struct {
	repo      repository.BudgetRepository
	tx        BudgetTxRunner
	companies CompanyChecker
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. log nil equivale a logger.Nop().
func NewUseCase(repo repository.BudgetRepository, tx BudgetTxRunner, companies CompanyChecker, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo:      repo,
		tx:        tx,
		companies: companies,
		log:       log.Named("budget"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Set crea el presupuesto inicial. Devuelve domain.ErrBudgetAlreadyExists si ya hay uno.
func (uc *UseCase) Set(ctx context.Context, companyID string, in dto.SetBudgetRequest) (*dto.BudgetSummaryResponse, error) {
	if err := uc.companies.EnsureExists(ctx, companyID); err != nil {
		return nil, err
	}
	b, err := entity.NewBudget(companyID, in.TotalCents, in.Currency, uc.now())
	if err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrBudgetAlreadyExists
	}
	if err := uc.repo.Save(ctx, b); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrBudgetAlreadyExists
		}
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Int64("total_cents", b.TotalCents()).
		Str("currency", b.Currency()).
		Msg("presupuesto creado")
	summary := toSummaryResponse(ledger.Summarize(b))
	return &summary, nil
}

// Update reemplaza total y moneda con la fila bloqueada. Un total menor a lo asignado
// se guarda igual y se informa con IsLowerThanAllocations.
func (uc *UseCase) Update(ctx context.Context, companyID string, in dto.UpdateBudgetRequest) (*dto.UpdateBudgetResponse, error) {
	if err := uc.companies.EnsureExists(ctx, companyID); err != nil {
		return nil, err
	}
	var (
		eval ledger.Evaluation
		next *entity.Budget
	)
	err := uc.tx.RunBudget(ctx, func(repo repository.LockingBudgetRepository) error {
		current, err := repo.FindByCompanyIDForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		next, err = current.WithTotal(in.TotalCents, in.Currency, uc.now())
		if err != nil {
			return err
		}
		eval = ledger.EvaluateTotal(current, next.TotalCents())
		return repo.Save(ctx, next)
	})
	if err != nil {
		return nil, err
	}
	if eval.IsLowerThanAllocations {
		uc.log.Warn().
			Str("company_id", companyID).
			Int64("total_cents", eval.NewTotalCents).
			Int64("allocated_cents", eval.AllocatedCents).
			Msg("total del presupuesto menor a lo asignado")
	}
	return &dto.UpdateBudgetResponse{
		TotalCents:             eval.NewTotalCents,
		Currency:               next.Currency(),
		AllocatedCents:         eval.AllocatedCents,
		RemainingCents:         eval.RemainingCents,
		IsLowerThanAllocations: eval.IsLowerThanAllocations,
		TotalDisplay:           display(eval.NewTotalCents),
		RemainingDisplay:       display(eval.RemainingCents),
	}, nil
}

// GetSummary devuelve el resumen; si la empresa no tiene presupuesto, Exists=false y ceros.
func (uc *UseCase) GetSummary(ctx context.Context, companyID string) (*dto.BudgetSummaryResponse, error) {
	if err := uc.companies.EnsureExists(ctx, companyID); err != nil {
		return nil, err
	}
	b, err := uc.repo.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	summary := toSummaryResponse(ledger.Summarize(b))
	return &summary, nil
}

func toSummaryResponse(s ledger.Summary) dto.BudgetSummaryResponse {
	return dto.BudgetSummaryResponse{
		Exists:           s.Exists,
		TotalCents:       s.TotalCents,
		AllocatedCents:   s.AllocatedCents,
		RemainingCents:   s.RemainingCents,
		Currency:         s.Currency,
		TotalDisplay:     display(s.TotalCents),
		RemainingDisplay: display(s.RemainingCents),
	}
}

// display unidades menores → mayores con 2 decimales ("100.00"). Solo para UI.
func display(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
