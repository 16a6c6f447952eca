// Package lockfile extrae nombres de paquetes declarados en lockfiles y manifiestos npm.
// Cada dialecto es un Parser; el Registry elige el primero que soporta el nombre de archivo.
package lockfile

import (
	"fmt"
	"path"
	"strings"

	"github.com/jhoicas/depcatalog-api/internal/domain"
)

// Parser lee un dialecto de lockfile y devuelve la lista plana de nombres declarados,
// en orden de documento y sin deduplicar. Ignora versiones, resoluciones y campos desconocidos.
type Parser interface {
	// Dialect identificador del dialecto (ej. "package-lock", "yarn").
	Dialect() string
	// Supports informa si el parser maneja el nombre de archivo (solo el nombre base).
	Supports(filename string) bool
	// Parse devuelve un error que envuelve domain.ErrMalformedInput si el contenido no se puede decodificar.
	Parse(content []byte) ([]string, error)
}

// Registry tabla de despacho ordenada: gana el primer parser cuyo Supports coincide.
type Registry struct {
	parsers []Parser
}

// NewRegistry construye un registro con los parsers en el orden de prioridad dado.
func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: append([]Parser(nil), parsers...)}
}

// DefaultRegistry registro con todos los dialectos soportados, en orden de prioridad.
func DefaultRegistry() *Registry {
	return NewRegistry(
		PackageLock{},
		YarnLock{},
		PnpmLock{},
		PackageJSON{},
	)
}

// Resolve devuelve el parser para filename o un error que envuelve domain.ErrUnsupportedFormat.
func (r *Registry) Resolve(filename string) (Parser, error) {
	name := baseName(filename)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre de archivo vacío", domain.ErrUnsupportedFormat)
	}
	for _, p := range r.parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
}

// Dialects lista los dialectos registrados en orden de prioridad.
func (r *Registry) Dialects() []string {
	out := make([]string, 0, len(r.parsers))
	for _, p := range r.parsers {
		out = append(out, p.Dialect())
	}
	return out
}

// baseName acepta rutas estilo Windows que llegan desde navegadores o la CLI.
func baseName(filename string) string {
	filename = strings.TrimSpace(strings.ReplaceAll(filename, `\`, "/"))
	if filename == "" {
		return ""
	}
	name := path.Base(filename)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func malformed(dialect string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrMalformedInput, dialect, err)
}
