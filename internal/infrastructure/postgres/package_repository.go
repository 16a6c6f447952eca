package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/depcatalog-api/internal/domain"
	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
	"github.com/jhoicas/depcatalog-api/internal/domain/repository"
)

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo catálogo de paquetes sobre PostgreSQL (usable con pool o tx).
// La unicidad la impone el índice packages_company_name_key.
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

// Exists informa si el nombre ya está en el catálogo de la empresa.
func (r *PackageRepo) Exists(ctx context.Context, companyID, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM packages WHERE company_id = $1 AND name = $2)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, companyID, name).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists package: %w", err)
	}
	return ok, nil
}

// FindExistingNames resuelve el lote completo en una consulta con = ANY($2).
func (r *PackageRepo) FindExistingNames(ctx context.Context, companyID string, names []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if len(names) == 0 {
		return out, nil
	}
	const query = `SELECT name FROM packages WHERE company_id = $1 AND name = ANY($2)`
	rows, err := r.q.Query(ctx, query, companyID, names)
	if err != nil {
		return nil, fmt.Errorf("find existing packages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan package name: %w", err)
		}
		out[name] = struct{}{}
	}
	return out, rows.Err()
}

// imported_by es texto libre: el actor no tiene por qué ser un usuario del servicio.
const (
	insertPackageSQL = `
		INSERT INTO packages (id, company_id, name, registry, imported_by, imported_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`

	insertPackagesBatchSQL = `
		INSERT INTO packages (id, company_id, name, registry, imported_by, imported_at)
		SELECT t.id::uuid, t.company_id::uuid, t.name, t.registry, NULLIF(t.imported_by, ''), t.imported_at
		  FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::timestamptz[])
		       AS t(id, company_id, name, registry, imported_by, imported_at)
		ON CONFLICT (company_id, name) DO NOTHING
		RETURNING name`
)

// Save inserta un paquete. (company_id, name) repetido → domain.ErrDuplicate.
func (r *PackageRepo) Save(ctx context.Context, pkg *entity.Package) error {
	_, err := r.q.Exec(ctx, insertPackageSQL,
		pkg.ID(), pkg.CompanyID(), pkg.Name(), pkg.Registry(), pkg.ImportedBy(), pkg.ImportedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

// SaveAll inserta el lote en una sentencia. Las filas que chocan con el índice único no se
// insertan; sus nombres se devuelven como conflictos en el orden del lote.
func (r *PackageRepo) SaveAll(ctx context.Context, pkgs []*entity.Package) ([]string, error) {
	if len(pkgs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(pkgs))
	companies := make([]string, len(pkgs))
	names := make([]string, len(pkgs))
	registries := make([]string, len(pkgs))
	actors := make([]string, len(pkgs))
	times := make([]time.Time, len(pkgs))
	for i, p := range pkgs {
		ids[i], companies[i], names[i] = p.ID(), p.CompanyID(), p.Name()
		registries[i], actors[i], times[i] = p.Registry(), p.ImportedBy(), p.ImportedAt()
	}

	rows, err := r.q.Query(ctx, insertPackagesBatchSQL, ids, companies, names, registries, actors, times)
	if err != nil {
		return nil, fmt.Errorf("insert packages: %w", err)
	}
	defer rows.Close()

	inserted := make(map[string]struct{}, len(pkgs))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan inserted package: %w", err)
		}
		inserted[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("insert packages: %w", err)
	}

	var conflicts []string
	for _, name := range names {
		if _, ok := inserted[name]; !ok {
			conflicts = append(conflicts, name)
		}
	}
	return conflicts, nil
}

// ListByCompany lista el catálogo ordenado por nombre. search filtra por subcadena sin distinguir mayúsculas.
func (r *PackageRepo) ListByCompany(ctx context.Context, companyID, search string, limit, offset int) ([]*entity.Package, error) {
	const query = `
		SELECT id, company_id, name, registry, COALESCE(imported_by, ''), imported_at
		FROM packages
		WHERE company_id = $1 AND ($2 = '' OR name ILIKE $3)
		ORDER BY name
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, companyID, search, likePattern(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var list []*entity.Package
	for rows.Next() {
		var (
			id, company, name, registry, actor string
			importedAt                         time.Time
		)
		if err := rows.Scan(&id, &company, &name, &registry, &actor, &importedAt); err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		p, err := entity.ReconstitutePackage(id, company, name, registry, actor, importedAt)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountByCompany cuenta el catálogo con el mismo filtro que ListByCompany.
func (r *PackageRepo) CountByCompany(ctx context.Context, companyID, search string) (int, error) {
	const query = `SELECT COUNT(*) FROM packages WHERE company_id = $1 AND ($2 = '' OR name ILIKE $3)`
	var n int
	if err := r.q.QueryRow(ctx, query, companyID, search, likePattern(search)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count packages: %w", err)
	}
	return n, nil
}
