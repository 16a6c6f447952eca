package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/depcatalog-api/internal/application/dto"
	"github.com/jhoicas/depcatalog-api/internal/domain"
	domcatalog "github.com/jhoicas/depcatalog-api/internal/domain/catalog"
	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
	"github.com/jhoicas/depcatalog-api/internal/domain/repository"
	"github.com/jhoicas/depcatalog-api/pkg/logger"
)

// ImportUseCase motor de importación del catálogo: valida, deduplica contra el lote y contra
// lo ya guardado, persiste lo nuevo en un solo lote y devuelve un reporte parcial.
// Los resultados por nombre nunca son errores; solo fallan la empresa, los límites y el almacenamiento.
type ImportUseCase struct {
	repo      repository.PackageRepository
	companies CompanyChecker
	parsers   ParserResolver
	limits    Limits
	log       *logger.Logger
	now       func() time.Time
}

// NewImportUseCase construye el motor. log nil equivale a logger.Nop().
func NewImportUseCase(repo repository.PackageRepository, companies CompanyChecker, parsers ParserResolver, limits Limits, log *logger.Logger) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{
		repo:      repo,
		companies: companies,
		parsers:   parsers,
		limits:    limits,
		log:       log.Named("catalog.import"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ImportNames importa una lista explícita. Cada cadena distinta de la entrada termina en
// exactamente uno de los buckets imported, skipped o invalid.
func (uc *ImportUseCase) ImportNames(ctx context.Context, companyID, actorID string, names []string) (*dto.ImportPackagesResponse, error) {
	if err := uc.companies.EnsureExists(ctx, companyID); err != nil {
		return nil, err
	}
	if uc.limits.MaxNames > 0 && len(names) > uc.limits.MaxNames {
		return nil, fmt.Errorf("%w: máximo %d nombres por importación", domain.ErrInvalidInput, uc.limits.MaxNames)
	}

	out := &dto.ImportPackagesResponse{Imported: []string{}, Skipped: []string{}, Invalid: []string{}}
	// order conserva la primera aparición de cada cadena válida; collided marca las que
	// colisionan tras normalizar con una anterior del mismo lote.
	type entry struct {
		raw, name string
		collided  bool
	}
	var order []entry
	var candidates []string
	normalized := make(map[string]struct{}, len(names))
	for _, raw := range unique(names) {
		if !domcatalog.IsValidName(raw) {
			out.Invalid = append(out.Invalid, raw)
			continue
		}
		name := domcatalog.NormalizeName(raw)
		if _, dup := normalized[name]; dup {
			order = append(order, entry{raw: raw, name: name, collided: true})
			continue
		}
		normalized[name] = struct{}{}
		order = append(order, entry{raw: raw, name: name})
		candidates = append(candidates, name)
	}

	imported, _, err := uc.persist(ctx, companyID, actorID, candidates)
	if err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(imported))
	for _, name := range imported {
		done[name] = struct{}{}
	}
	for _, e := range order {
		if _, ok := done[e.name]; ok && !e.collided {
			out.Imported = append(out.Imported, e.name)
			continue
		}
		if e.collided {
			out.Skipped = append(out.Skipped, e.raw)
		} else {
			out.Skipped = append(out.Skipped, e.name)
		}
	}
	out.ImportedCount = len(out.Imported)
	out.SkippedCount = len(out.Skipped)
	out.InvalidCount = len(out.Invalid)

	uc.log.Info().
		Str("company_id", companyID).
		Int("imported", out.ImportedCount).
		Int("skipped", out.SkippedCount).
		Int("invalid", out.InvalidCount).
		Msg("importación de nombres")
	return out, nil
}

// ImportLockfile detecta el dialecto por nombre de archivo, extrae los nombres y los importa.
// Formato no soportado o contenido ilegible abortan antes de escribir nada.
func (uc *ImportUseCase) ImportLockfile(ctx context.Context, companyID, actorID string, content []byte, filename string) (*dto.ImportLockfileResponse, error) {
	if err := uc.companies.EnsureExists(ctx, companyID); err != nil {
		return nil, err
	}
	if uc.limits.MaxLockfileBytes > 0 && int64(len(content)) > uc.limits.MaxLockfileBytes {
		return nil, fmt.Errorf("%w: el lockfile supera %d bytes", domain.ErrInvalidInput, uc.limits.MaxLockfileBytes)
	}
	parser, err := uc.parsers.Resolve(filename)
	if err != nil {
		return nil, err
	}
	parsed, err := parser.Parse(content)
	if err != nil {
		return nil, err
	}

	cleaned := make([]string, 0, len(parsed))
	for _, raw := range parsed {
		if name := domcatalog.NormalizeName(raw); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	names := unique(cleaned)

	imported, skipped, err := uc.persist(ctx, companyID, actorID, names)
	if err != nil {
		return nil, err
	}
	out := &dto.ImportLockfileResponse{
		Dialect:       parser.Dialect(),
		TotalParsed:   len(names),
		ImportedCount: len(imported),
		SkippedCount:  len(skipped),
		Imported:      imported,
		Skipped:       skipped,
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("dialect", out.Dialect).
		Int("total_parsed", out.TotalParsed).
		Int("imported", out.ImportedCount).
		Int("skipped", out.SkippedCount).
		Msg("importación de lockfile")
	return out, nil
}

// persist separa names (ya únicos y normalizados) en importados y omitidos, conservando el orden.
func (uc *ImportUseCase) persist(ctx context.Context, companyID, actorID string, names []string) (imported, skipped []string, err error) {
	imported, skipped = []string{}, []string{}
	if len(names) == 0 {
		return imported, skipped, nil
	}
	existing, err := uc.repo.FindExistingNames(ctx, companyID, names)
	if err != nil {
		return nil, nil, fmt.Errorf("buscar existentes: %w", err)
	}

	now := uc.now()
	var fresh []string
	pkgs := make([]*entity.Package, 0, len(names))
	for _, name := range names {
		if _, ok := existing[name]; ok {
			continue
		}
		pkg, err := entity.NewPackage(companyID, name, actorID, now)
		if err != nil {
			return nil, nil, err
		}
		pkgs = append(pkgs, pkg)
		fresh = append(fresh, name)
	}

	lost := map[string]struct{}{}
	if len(pkgs) > 0 {
		conflicts, err := uc.repo.SaveAll(ctx, pkgs)
		if err != nil {
			return nil, nil, fmt.Errorf("guardar paquetes: %w", err)
		}
		for _, name := range conflicts {
			lost[name] = struct{}{}
		}
		if len(conflicts) > 0 {
			uc.log.Debug().Str("company_id", companyID).Int("conflicts", len(conflicts)).Msg("nombres guardados por otra importación")
		}
	}

	freshSet := make(map[string]struct{}, len(fresh))
	for _, name := range fresh {
		freshSet[name] = struct{}{}
	}
	for _, name := range names {
		_, isFresh := freshSet[name]
		_, isLost := lost[name]
		if isFresh && !isLost {
			imported = append(imported, name)
		} else {
			skipped = append(skipped, name)
		}
	}
	return imported, skipped, nil
}

// unique elimina repetidos exactos conservando la primera aparición.
func unique(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
