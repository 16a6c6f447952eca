package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/depcatalog-api/internal/domain"
	"golang.org/x/text/currency"
)

// Budget presupuesto de una empresa (uno por empresa). Montos en unidades menores (centavos).
// AllocatedCents lo mantiene el subsistema de asignaciones; este servicio nunca lo escribe.
// Remaining no se almacena: siempre es total - allocated y puede ser negativo.
type Budget struct {
	id             string
	companyID      string
	totalCents     int64
	allocatedCents int64
	currency       string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewBudget crea el presupuesto inicial de una empresa con asignación cero.
func NewBudget(companyID string, totalCents int64, currencyCode string, now time.Time) (*Budget, error) {
	if strings.TrimSpace(companyID) == "" {
		return nil, fmt.Errorf("%w: company_id es obligatorio", domain.ErrInvalidInput)
	}
	code, err := NormalizeCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	if totalCents < 0 {
		return nil, fmt.Errorf("%w: el total no puede ser negativo", domain.ErrInvalidInput)
	}
	now = now.UTC()
	return &Budget{
		id:         uuid.New().String(),
		companyID:  companyID,
		totalCents: totalCents,
		currency:   code,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstituteBudget reconstruye un presupuesto leído desde el almacenamiento.
func ReconstituteBudget(id, companyID string, totalCents, allocatedCents int64, currencyCode string, createdAt, updatedAt time.Time) (*Budget, error) {
	if id == "" || companyID == "" {
		return nil, fmt.Errorf("%w: presupuesto incompleto", domain.ErrInvalidInput)
	}
	if allocatedCents < 0 {
		return nil, fmt.Errorf("%w: asignación negativa", domain.ErrInvalidInput)
	}
	return &Budget{
		id:             id,
		companyID:      companyID,
		totalCents:     totalCents,
		allocatedCents: allocatedCents,
		currency:       strings.ToUpper(currencyCode),
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// WithTotal devuelve una copia con el nuevo total y moneda. La asignación no cambia.
// No rechaza un total menor a lo asignado: eso lo evalúa el ledger como advertencia.
func (b *Budget) WithTotal(totalCents int64, currencyCode string, now time.Time) (*Budget, error) {
	if totalCents < 0 {
		return nil, fmt.Errorf("%w: el total no puede ser negativo", domain.ErrInvalidInput)
	}
	code, err := NormalizeCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	next := *b
	next.totalCents = totalCents
	next.currency = code
	next.updatedAt = now.UTC()
	return &next, nil
}

func (b *Budget) ID() string            { return b.id }
func (b *Budget) CompanyID() string     { return b.companyID }
func (b *Budget) TotalCents() int64     { return b.totalCents }
func (b *Budget) AllocatedCents() int64 { return b.allocatedCents }
func (b *Budget) Currency() string      { return b.currency }
func (b *Budget) CreatedAt() time.Time  { return b.createdAt }
func (b *Budget) UpdatedAt() time.Time  { return b.updatedAt }

// RemainingCents total - asignado. Negativo indica sobre-asignación.
func (b *Budget) RemainingCents() int64 { return b.totalCents - b.allocatedCents }

// NormalizeCurrency valida un código ISO-4217 y lo devuelve en mayúsculas.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: moneda %q no es un código ISO-4217", domain.ErrInvalidInput, code)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: moneda %q no es un código ISO-4217", domain.ErrInvalidInput, code)
	}
	return unit.String(), nil
}
