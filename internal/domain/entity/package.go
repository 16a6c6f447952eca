package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/depcatalog-api/internal/domain"
)

// DefaultRegistry registro al que pertenecen todos los paquetes del catálogo.
const DefaultRegistry = "npm"

// Package entrada del catálogo de dependencias de una empresa. Inmutable una vez creada:
// solo se construye con NewPackage (importación) o ReconstitutePackage (lectura desde BD).
type Package struct {
	id         string
	companyID  string
	name       string
	registry   string
	importedBy string
	importedAt time.Time
}

// NewPackage crea un paquete nuevo con ID generado y registro por defecto.
// El nombre debe venir ya validado y normalizado por el motor de importación.
// importedBy es texto libre de procedencia (usuario, CI, script); vacío si no hay actor.
func NewPackage(companyID, name, importedBy string, now time.Time) (*Package, error) {
	if strings.TrimSpace(companyID) == "" || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: company_id y name son obligatorios", domain.ErrInvalidInput)
	}
	return &Package{
		id:         uuid.New().String(),
		companyID:  companyID,
		name:       name,
		registry:   DefaultRegistry,
		importedBy: strings.TrimSpace(importedBy),
		importedAt: now.UTC(),
	}, nil
}

// ReconstitutePackage reconstruye un paquete persistido sin generar identidad nueva.
func ReconstitutePackage(id, companyID, name, registry, importedBy string, importedAt time.Time) (*Package, error) {
	if id == "" || companyID == "" || name == "" {
		return nil, fmt.Errorf("%w: paquete incompleto", domain.ErrInvalidInput)
	}
	if registry == "" {
		registry = DefaultRegistry
	}
	return &Package{
		id:         id,
		companyID:  companyID,
		name:       name,
		registry:   registry,
		importedBy: importedBy,
		importedAt: importedAt,
	}, nil
}

func (p *Package) ID() string            { return p.id }
func (p *Package) CompanyID() string     { return p.companyID }
func (p *Package) Name() string          { return p.name }
func (p *Package) Registry() string      { return p.registry }
func (p *Package) ImportedBy() string    { return p.importedBy }
func (p *Package) ImportedAt() time.Time { return p.importedAt }
