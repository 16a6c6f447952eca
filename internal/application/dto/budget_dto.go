package dto

// SetBudgetRequest entrada para crear el presupuesto de la empresa.
type SetBudgetRequest struct {
	TotalCents int64  `json:"total_cents" validate:"min=0"`
	Currency   string `json:"currency" validate:"required,len=3"`
}

// UpdateBudgetRequest entrada para reemplazar el total del presupuesto.
type UpdateBudgetRequest struct {
	TotalCents int64  `json:"total_cents" validate:"min=0"`
	Currency   string `json:"currency" validate:"required,len=3"`
}

// BudgetSummaryResponse resumen del presupuesto. Exists=false y ceros si no se ha configurado.
// Los campos *_display son solo para UI (unidades mayores, 2 decimales).
type BudgetSummaryResponse struct {
	Exists           bool   `json:"exists"`
	TotalCents       int64  `json:"total_cents"`
	AllocatedCents   int64  `json:"allocated_cents"`
	RemainingCents   int64  `json:"remaining_cents"`
	Currency         string `json:"currency,omitempty"`
	TotalDisplay     string `json:"total_display"`
	RemainingDisplay string `json:"remaining_display"`
}

// UpdateBudgetResponse resultado de Update. IsLowerThanAllocations es advertencia, no rechazo.
type UpdateBudgetResponse struct {
	TotalCents             int64  `json:"total_cents"`
	Currency               string `json:"currency"`
	AllocatedCents         int64  `json:"allocated_cents"`
	RemainingCents         int64  `json:"remaining_cents"`
	IsLowerThanAllocations bool   `json:"is_lower_than_allocations"`
	TotalDisplay           string `json:"total_display"`
	RemainingDisplay       string `json:"remaining_display"`
}
