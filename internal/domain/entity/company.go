package entity

import "time"

// Estados válidos de una empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
)

// Company representa una organización/tenant del sistema. Catálogo y presupuesto cuelgan de ella.
type Company struct {
	ID        string
	Name      string
	Slug      string // identificador legible, único global
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
