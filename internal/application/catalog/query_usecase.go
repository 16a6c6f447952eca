package catalog

import (
	"context"

	"github.com/jhoicas/depcatalog-api/internal/application/dto"
	domcatalog "github.com/jhoicas/depcatalog-api/internal/domain/catalog"
	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
	"github.com/jhoicas/depcatalog-api/internal/domain/repository"
)

// QueryUseCase lecturas del catálogo de una empresa.
type QueryUseCase struct {
	repo      repository.PackageRepository
	companies CompanyChecker
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(repo repository.PackageRepository, companies CompanyChecker) *QueryUseCase {
	return &QueryUseCase{repo: repo, companies: companies}
}

// List devuelve una página del catálogo filtrada por search (subcadena, sin distinguir mayúsculas).
func (uc *QueryUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.PackageListResponse, error) {
	if err := uc.companies.EnsureExists(ctx, companyID); err != nil {
		return nil, err
	}
	page.Normalize()
	search := domcatalog.NormalizeName(page.Search)

	total, err := uc.repo.CountByCompany(ctx, companyID, search)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackageResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPackageResponse(p))
	}
	return &dto.PackageListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Exists informa si name ya está en el catálogo de la empresa.
func (uc *QueryUseCase) Exists(ctx context.Context, companyID, name string) (bool, error) {
	if err := uc.companies.EnsureExists(ctx, companyID); err != nil {
		return false, err
	}
	return uc.repo.Exists(ctx, companyID, domcatalog.NormalizeName(name))
}

func toPackageResponse(p *entity.Package) dto.PackageResponse {
	return dto.PackageResponse{
		ID:         p.ID(),
		CompanyID:  p.CompanyID(),
		Name:       p.Name(),
		Registry:   p.Registry(),
		ImportedBy: p.ImportedBy(),
		ImportedAt: p.ImportedAt(),
	}
}
