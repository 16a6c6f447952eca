package lockfile

import (
	"bytes"
	"strings"
)

// manifestSections secciones de package.json que declaran dependencias, en orden de lectura.
var manifestSections = []string{"dependencies", "devDependencies", "peerDependencies", "optionalDependencies"}

// PackageJSON parsea manifiestos package.json (solo dependencias directas).
type PackageJSON struct{}

func (PackageJSON) Dialect() string { return "package-json" }

func (PackageJSON) Supports(name string) bool { return strings.EqualFold(name, "package.json") }

func (p PackageJSON) Parse(content []byte) ([]string, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}
	root, err := orderedObject(content)
	if err != nil {
		return nil, malformed(p.Dialect(), err)
	}
	var names []string
	for _, section := range manifestSections {
		raw, ok := field(root, section)
		if !ok || !isObject(raw) {
			continue
		}
		deps, err := orderedObject(raw)
		if err != nil {
			return nil, malformed(p.Dialect(), err)
		}
		for _, d := range deps {
			if d.Key != "" {
				names = append(names, d.Key)
			}
		}
	}
	return names, nil
}
