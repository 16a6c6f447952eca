package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
	"github.com/jhoicas/depcatalog-api/internal/domain/ledger"
)

func budgetWithAllocation(t *testing.T, total, allocated int64) *entity.Budget {
	t.Helper()
	now := time.Now()
	b, err := entity.ReconstituteBudget("b-1", "c-1", total, allocated, "EUR", now, now)
	require.NoError(t, err)
	return b
}

func TestSummarize_SinPresupuesto(t *testing.T) {
	s := ledger.Summarize(nil)
	assert.Equal(t, ledger.Summary{}, s)
	assert.False(t, s.Exists)
}

func TestSummarize_PresupuestoNuevo(t *testing.T) {
	b, err := entity.NewBudget("c-1", 10_000, "eur", time.Now())
	require.NoError(t, err)

	s := ledger.Summarize(b)
	assert.True(t, s.Exists)
	assert.Equal(t, int64(10_000), s.TotalCents)
	assert.Equal(t, int64(0), s.AllocatedCents)
	assert.Equal(t, int64(10_000), s.RemainingCents)
	assert.Equal(t, "EUR", s.Currency)
}

func TestSummarize_RestanteNegativoNoSeRecorta(t *testing.T) {
	s := ledger.Summarize(budgetWithAllocation(t, 3_000, 5_000))
	assert.Equal(t, int64(-2_000), s.RemainingCents)
}

func TestEvaluateTotal(t *testing.T) {
	current := budgetWithAllocation(t, 10_000, 5_000)

	cases := []struct {
		name     string
		newTotal int64
		lower    bool
		rest     int64
	}{
		{"por debajo de lo asignado", 3_000, true, -2_000},
		{"igual a lo asignado", 5_000, false, 0},
		{"por encima", 12_000, false, 7_000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := ledger.EvaluateTotal(current, tc.newTotal)
			assert.Equal(t, tc.lower, ev.IsLowerThanAllocations)
			assert.Equal(t, tc.rest, ev.RemainingCents)
			assert.Equal(t, int64(5_000), ev.AllocatedCents)
		})
	}
}
