// Package catalog contiene las reglas de dominio del catálogo de dependencias:
// qué es un nombre importable y cómo se normaliza antes de persistirlo.
package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength longitud máxima de un nombre en el registro npm.
const MaxNameLength = 214

// Scope opcional "@scope/" seguido del segmento de paquete. Cada segmento solo admite
// minúsculas, dígitos, '-', '.', '_'; el primer carácter no puede ser '.' ni '_'.
var namePattern = regexp.MustCompile(`^(?:@[a-z0-9~-][a-z0-9._-]*/)?[a-z0-9~-][a-z0-9._-]*$`)

// IsValidName informa si name es un nombre importable. Función pura: nunca falla,
// una entrada inválida simplemente devuelve false.
func IsValidName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return false
	}
	return namePattern.MatchString(name)
}

// NormalizeName recorta espacios y lleva el texto a forma NFC. No cambia mayúsculas.
func NormalizeName(raw string) string {
	return strings.TrimSpace(norm.NFC.String(raw))
}
