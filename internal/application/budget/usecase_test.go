package budget_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depcatalog-api/internal/application/budget"
	"github.com/jhoicas/depcatalog-api/internal/application/dto"
	"github.com/jhoicas/depcatalog-api/internal/domain"
	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
	"github.com/jhoicas/depcatalog-api/internal/domain/repository"
	"github.com/jhoicas/depcatalog-api/pkg/logger"
)

const companyID = "00000000-0000-0000-0000-0000000000c1"

// memBudgets almacén en memoria; también actúa como BudgetTxRunner.
type memBudgets struct {
	mu   sync.Mutex
	rows map[string]*entity.Budget
}

func (m *memBudgets) FindByCompanyID(_ context.Context, id string) (*entity.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id], nil
}

func (m *memBudgets) FindByCompanyIDForUpdate(ctx context.Context, id string) (*entity.Budget, error) {
	return m.FindByCompanyID(ctx, id)
}

func (m *memBudgets) ExistsByCompanyID(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok, nil
}

// Save conserva allocated_cents del registro guardado, como el upsert SQL.
func (m *memBudgets) Save(_ context.Context, b *entity.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	allocated := int64(0)
	if cur, ok := m.rows[b.CompanyID()]; ok {
		if cur.ID() != b.ID() {
			return domain.ErrConflict
		}
		allocated = cur.AllocatedCents()
	}
	stored, err := entity.ReconstituteBudget(b.ID(), b.CompanyID(), b.TotalCents(), allocated, b.Currency(), b.CreatedAt(), b.UpdatedAt())
	if err != nil {
		return err
	}
	m.rows[b.CompanyID()] = stored
	return nil
}

func (m *memBudgets) RunBudget(_ context.Context, fn func(repository.LockingBudgetRepository) error) error {
	return fn(m)
}

// allocate simula al subsistema externo de asignaciones.
func (m *memBudgets) allocate(t *testing.T, id string, cents int64) {
	t.Helper()
	cur := m.rows[id]
	b, err := entity.ReconstituteBudget(cur.ID(), id, cur.TotalCents(), cents, cur.Currency(), cur.CreatedAt(), time.Now())
	require.NoError(t, err)
	m.rows[id] = b
}

type companies map[string]bool

func (c companies) EnsureExists(_ context.Context, id string) error {
	if !c[id] {
		return domain.ErrNotFound
	}
	return nil
}

func newBudget() (*budget.UseCase, *memBudgets) {
	store := &memBudgets{rows: map[string]*entity.Budget{}}
	return budget.NewUseCase(store, store, companies{companyID: true}, logger.Nop()), store
}

func TestSet_CreaConAsignacionCero(t *testing.T) {
	uc, _ := newBudget()

	out, err := uc.Set(context.Background(), companyID, dto.SetBudgetRequest{TotalCents: 10000, Currency: "eur"})
	require.NoError(t, err)
	assert.True(t, out.Exists)
	assert.Equal(t, int64(10000), out.TotalCents)
	assert.Zero(t, out.AllocatedCents)
	assert.Equal(t, int64(10000), out.RemainingCents)
	assert.Equal(t, "EUR", out.Currency)
	assert.Equal(t, "100.00", out.TotalDisplay)
}

func TestSet_Errores(t *testing.T) {
	uc, _ := newBudget()
	ctx := context.Background()

	_, err := uc.Set(ctx, companyID, dto.SetBudgetRequest{TotalCents: -1, Currency: "EUR"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Set(ctx, companyID, dto.SetBudgetRequest{TotalCents: 1, Currency: "XXQ"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Set(ctx, "otra", dto.SetBudgetRequest{TotalCents: 1, Currency: "EUR"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Set(ctx, companyID, dto.SetBudgetRequest{TotalCents: 1, Currency: "EUR"})
	require.NoError(t, err)
	_, err = uc.Set(ctx, companyID, dto.SetBudgetRequest{TotalCents: 2, Currency: "EUR"})
	assert.ErrorIs(t, err, domain.ErrBudgetAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_MenorQueAsignadoSeGuardaConAdvertencia(t *testing.T) {
	uc, store := newBudget()
	ctx := context.Background()

	_, err := uc.Set(ctx, companyID, dto.SetBudgetRequest{TotalCents: 10000, Currency: "EUR"})
	require.NoError(t, err)
	store.allocate(t, companyID, 5000)

	out, err := uc.Update(ctx, companyID, dto.UpdateBudgetRequest{TotalCents: 3000, Currency: "EUR"})
	require.NoError(t, err)
	assert.True(t, out.IsLowerThanAllocations)
	assert.Equal(t, int64(3000), out.TotalCents)
	assert.Equal(t, int64(5000), out.AllocatedCents)
	assert.Equal(t, int64(-2000), out.RemainingCents)
	assert.Equal(t, "-20.00", out.RemainingDisplay)

	summary, err := uc.GetSummary(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), summary.TotalCents)
	assert.Equal(t, int64(5000), summary.AllocatedCents)
}

func TestUpdate_SinAdvertencia(t *testing.T) {
	uc, store := newBudget()
	ctx := context.Background()

	_, err := uc.Set(ctx, companyID, dto.SetBudgetRequest{TotalCents: 10000, Currency: "USD"})
	require.NoError(t, err)
	store.allocate(t, companyID, 5000)

	out, err := uc.Update(ctx, companyID, dto.UpdateBudgetRequest{TotalCents: 5000, Currency: "cop"})
	require.NoError(t, err)
	assert.False(t, out.IsLowerThanAllocations)
	assert.Zero(t, out.RemainingCents)
	assert.Equal(t, "COP", out.Currency)
}

func TestUpdate_SinPresupuesto(t *testing.T) {
	uc, _ := newBudget()

	_, err := uc.Update(context.Background(), companyID, dto.UpdateBudgetRequest{TotalCents: 1, Currency: "EUR"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSummary_SinPresupuesto(t *testing.T) {
	uc, _ := newBudget()

	out, err := uc.GetSummary(context.Background(), companyID)
	require.NoError(t, err)
	assert.False(t, out.Exists)
	assert.Zero(t, out.TotalCents)
	assert.Zero(t, out.AllocatedCents)
	assert.Zero(t, out.RemainingCents)
	assert.Equal(t, "0.00", out.TotalDisplay)
}

// staleExists responde "no existe" aunque otra petición ya haya guardado el presupuesto.
type staleExists struct{ *memBudgets }

func (staleExists) ExistsByCompanyID(context.Context, string) (bool, error) { return false, nil }

func TestSet_ConcurrenteChocaConIndiceUnico(t *testing.T) {
	store := &memBudgets{rows: map[string]*entity.Budget{}}
	ctx := context.Background()
	winner := budget.NewUseCase(store, store, companies{companyID: true}, logger.Nop())
	_, err := winner.Set(ctx, companyID, dto.SetBudgetRequest{TotalCents: 500, Currency: "EUR"})
	require.NoError(t, err)

	loser := budget.NewUseCase(staleExists{store}, store, companies{companyID: true}, logger.Nop())
	_, err = loser.Set(ctx, companyID, dto.SetBudgetRequest{TotalCents: 900, Currency: "EUR"})
	assert.ErrorIs(t, err, domain.ErrBudgetAlreadyExists)

	kept, err := store.FindByCompanyID(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), kept.TotalCents())
}
