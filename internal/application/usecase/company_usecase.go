package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jhoicas/depcatalog-api/internal/application/dto"
	"github.com/jhoicas/depcatalog-api/internal/domain"
	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
	"github.com/jhoicas/depcatalog-api/internal/domain/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

// CompanyUseCase aplica reglas de negocio para empresas y resuelve la existencia del tenant
// para el resto de casos de uso (catálogo, presupuesto).
type CompanyUseCase struct {
	repo  repository.CompanyRepository
	known *lru.Cache[string, struct{}] // solo búsquedas positivas; nil = sin cache
}

// NewCompanyUseCase construye el caso de uso. cacheSize <= 0 desactiva la cache de existencia.
func NewCompanyUseCase(repo repository.CompanyRepository, cacheSize int) (*CompanyUseCase, error) {
	uc := &CompanyUseCase{repo: repo}
	if cacheSize > 0 {
		cache, err := lru.New[string, struct{}](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("company cache: %w", err)
		}
		uc.known = cache
	}
	return uc, nil
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el slug ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if name == "" || !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: name y slug válido son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		Email:     strings.TrimSpace(in.Email),
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	uc.remember(company.ID)
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID. (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// EnsureExists devuelve domain.ErrNotFound si la empresa no existe. Las empresas no se borran
// en este servicio, así que una respuesta positiva se cachea.
func (uc *CompanyUseCase) EnsureExists(ctx context.Context, companyID string) error {
	if strings.TrimSpace(companyID) == "" {
		return fmt.Errorf("%w: company_id vacío", domain.ErrNotFound)
	}
	if uc.known != nil && uc.known.Contains(companyID) {
		return nil
	}
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("company: %w", err)
	}
	if company == nil {
		return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	uc.remember(companyID)
	return nil
}

func (uc *CompanyUseCase) remember(companyID string) {
	if uc.known != nil {
		uc.known.Add(companyID, struct{}{})
	}
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
