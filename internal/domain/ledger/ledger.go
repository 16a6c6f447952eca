// Package ledger reglas puras del presupuesto: resumen total/asignado/restante y
// evaluación de un nuevo total frente a lo ya asignado. Sin I/O.
package ledger

import "github.com/jhoicas/depcatalog-api/internal/domain/entity"

// Summary vista derivada de un presupuesto. Exists=false significa "aún no configurado".
type Summary struct {
	Exists         bool
	TotalCents     int64
	AllocatedCents int64
	RemainingCents int64
	Currency       string
}

// Evaluation resultado de evaluar un nuevo total. El flag es solo informativo:
// el total se persiste igualmente.
type Evaluation struct {
	NewTotalCents          int64
	AllocatedCents         int64
	RemainingCents         int64
	IsLowerThanAllocations bool
}

// Summarize calcula el resumen. Un presupuesto nil produce el resumen centinela con ceros.
func Summarize(b *entity.Budget) Summary {
	if b == nil {
		return Summary{}
	}
	return Summary{
		Exists:         true,
		TotalCents:     b.TotalCents(),
		AllocatedCents: b.AllocatedCents(),
		RemainingCents: b.RemainingCents(),
		Currency:       b.Currency(),
	}
}

// EvaluateTotal compara newTotalCents con la asignación vigente de current.
// El restante proyectado no se recorta a cero para que la sobre-asignación sea visible.
func EvaluateTotal(current *entity.Budget, newTotalCents int64) Evaluation {
	var allocated int64
	if current != nil {
		allocated = current.AllocatedCents()
	}
	return Evaluation{
		NewTotalCents:          newTotalCents,
		AllocatedCents:         allocated,
		RemainingCents:         newTotalCents - allocated,
		IsLowerThanAllocations: newTotalCents < allocated,
	}
}
