package catalog

import (
	"context"

	"github.com/jhoicas/depcatalog-api/internal/domain/lockfile"
)

// CompanyChecker valida que el tenant exista antes de tocar el catálogo.
type CompanyChecker interface {
	EnsureExists(ctx context.Context, companyID string) error
}

// ParserResolver elige el parser de lockfile según el nombre de archivo (lo implementa *lockfile.Registry).
type ParserResolver interface {
	Resolve(filename string) (lockfile.Parser, error)
}

// Limits tamaños máximos aceptados por importación. Cero = sin límite.
type Limits struct {
	MaxNames         int
	MaxLockfileBytes int64
}
