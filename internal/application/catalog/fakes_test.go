package catalog_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/depcatalog-api/internal/domain"
	"github.com/jhoicas/depcatalog-api/internal/domain/entity"
)

const (
	companyA = "00000000-0000-0000-0000-00000000000a"
	companyB = "00000000-0000-0000-0000-00000000000b"
	actorID  = "00000000-0000-0000-0000-0000000000ff"
)

// memPackages implementación en memoria de repository.PackageRepository.
// raced simula nombres que otra importación concurrente guarda entre la consulta y el insert.
type memPackages struct {
	mu       sync.Mutex
	rows     map[string]map[string]*entity.Package
	raced    map[string]struct{}
	saveErr  error
	calls    int
	findArgs [][]string
}

func newMemPackages() *memPackages {
	return &memPackages{rows: map[string]map[string]*entity.Package{}, raced: map[string]struct{}{}}
}

func (m *memPackages) seed(companyID string, names ...string) {
	for _, n := range names {
		p, _ := entity.NewPackage(companyID, n, actorID, fixedNow)
		m.put(p)
	}
}

func (m *memPackages) put(p *entity.Package) {
	if m.rows[p.CompanyID()] == nil {
		m.rows[p.CompanyID()] = map[string]*entity.Package{}
	}
	m.rows[p.CompanyID()][p.Name()] = p
}

func (m *memPackages) Exists(_ context.Context, companyID, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	_, ok := m.rows[companyID][name]
	return ok, nil
}

func (m *memPackages) FindExistingNames(_ context.Context, companyID string, names []string) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.findArgs = append(m.findArgs, append([]string(nil), names...))
	out := map[string]struct{}{}
	for _, n := range names {
		if _, ok := m.rows[companyID][n]; ok {
			out[n] = struct{}{}
		}
	}
	return out, nil
}

func (m *memPackages) Save(_ context.Context, p *entity.Package) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.rows[p.CompanyID()][p.Name()]; ok {
		return domain.ErrDuplicate
	}
	m.put(p)
	return nil
}

func (m *memPackages) SaveAll(_ context.Context, pkgs []*entity.Package) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	var conflicts []string
	for _, p := range pkgs {
		if _, ok := m.raced[p.Name()]; ok {
			conflicts = append(conflicts, p.Name())
			continue
		}
		if _, ok := m.rows[p.CompanyID()][p.Name()]; ok {
			conflicts = append(conflicts, p.Name())
			continue
		}
		m.put(p)
	}
	return conflicts, nil
}

func (m *memPackages) filtered(companyID, search string) []*entity.Package {
	var out []*entity.Package
	for _, p := range m.rows[companyID] {
		if search == "" || strings.Contains(strings.ToLower(p.Name()), strings.ToLower(search)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func (m *memPackages) ListByCompany(_ context.Context, companyID, search string, limit, offset int) ([]*entity.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filtered(companyID, search)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memPackages) CountByCompany(_ context.Context, companyID, search string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filtered(companyID, search)), nil
}

func (m *memPackages) names(companyID string) []string {
	var out []string
	for n := range m.rows[companyID] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

type knownCompanies map[string]bool

func (k knownCompanies) EnsureExists(_ context.Context, id string) error {
	if !k[id] {
		return domain.ErrNotFound
	}
	return nil
}
