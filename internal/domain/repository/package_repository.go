package repository

import (
	"context"

	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
)

// PackageRepository puerto del catálogo de paquetes, siempre acotado por empresa.
// La unicidad (company_id, name) la garantiza el almacenamiento.
type PackageRepository interface {
	Exists(ctx context.Context, companyID, name string) (bool, error)
	// FindExistingNames devuelve, en una sola consulta, cuáles de names ya existen para la empresa.
	FindExistingNames(ctx context.Context, companyID string, names []string) (map[string]struct{}, error)
	// Save devuelve domain.ErrDuplicate si (company_id, name) ya existe.
	Save(ctx context.Context, pkg *entity.Package) error
	// SaveAll inserta el lote y devuelve los nombres que no se insertaron por conflicto
	// de unicidad (otra importación concurrente los guardó primero).
	SaveAll(ctx context.Context, pkgs []*entity.Package) (conflicts []string, err error)
	ListByCompany(ctx context.Context, companyID, search string, limit, offset int) ([]*entity.Package, error)
	CountByCompany(ctx context.Context, companyID, search string) (int, error)
}
