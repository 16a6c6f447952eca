package lockfile

import (
	"errors"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// pnpmImporterSections secciones de dependencias dentro de cada importer (y en la raíz en v5).
var pnpmImporterSections = []string{"dependencies", "devDependencies", "optionalDependencies"}

// PnpmLock parsea pnpm-lock.yaml (lockfileVersion 5.x, 6.x y 9.x).
type PnpmLock struct{}

func (PnpmLock) Dialect() string { return "pnpm" }

func (PnpmLock) Supports(name string) bool {
	return strings.EqualFold(name, "pnpm-lock.yaml") || strings.EqualFold(name, "pnpm-lock.yml")
}

// Parse lee primero las claves de "packages" y luego las dependencias declaradas por
// los importers y la raíz. Se usa la API de nodos de yaml.v3 para conservar el orden.
func (p PnpmLock) Parse(content []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, malformed(p.Dialect(), err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, malformed(p.Dialect(), errors.New("se esperaba un mapa en la raíz"))
	}

	legacy, known := pnpmVersion(mappingValue(root, "lockfileVersion"))
	var names []string

	if pkgs := mappingValue(root, "packages"); pkgs != nil && pkgs.Kind == yaml.MappingNode {
		for _, key := range mappingKeys(pkgs) {
			keyLegacy := legacy
			if !known {
				keyLegacy = isLegacyPnpmKey(key)
			}
			if name := pnpmPackageName(key, keyLegacy); name != "" {
				names = append(names, name)
			}
		}
	}

	if importers := mappingValue(root, "importers"); importers != nil && importers.Kind == yaml.MappingNode {
		for i := 1; i < len(importers.Content); i += 2 {
			names = appendSectionKeys(names, importers.Content[i])
		}
	}
	names = appendSectionKeys(names, root)
	return names, nil
}

func appendSectionKeys(names []string, node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return names
	}
	for _, section := range pnpmImporterSections {
		deps := mappingValue(node, section)
		if deps == nil || deps.Kind != yaml.MappingNode {
			continue
		}
		for _, key := range mappingKeys(deps) {
			if key != "" {
				names = append(names, key)
			}
		}
	}
	return names
}

// pnpmVersion indica si lockfileVersion es < 6, donde las claves son "/nombre/versión".
// known es false cuando la versión falta o no es numérica.
func pnpmVersion(node *yaml.Node) (legacy, known bool) {
	if node == nil {
		return false, false
	}
	v, err := strconv.ParseFloat(strings.Trim(node.Value, `'"`), 64)
	if err != nil {
		return false, false
	}
	return v < 6, true
}

// isLegacyPnpmKey deduce el formato por la forma de la clave: en v5 el nombre va seguido
// de "/" y en v6+ de "@".
func isLegacyPnpmKey(key string) bool {
	k := strings.TrimPrefix(strings.TrimSpace(key), "/")
	rest := k
	if strings.HasPrefix(k, "@") {
		slash := strings.IndexByte(k, '/')
		if slash < 0 {
			return false
		}
		rest = k[slash+1:]
	}
	i := strings.IndexAny(rest, "/@")
	return i >= 0 && rest[i] == '/'
}

// pnpmPackageName extrae el nombre de una clave de "packages":
//
//	v5: /lodash/4.17.21, /@babel/core/7.0.0_supports-color@5.5.0
//	v6: /lodash@4.17.21, /@babel/core@7.0.0(supports-color@5.5.0)
//	v9: lodash@4.17.21, '@babel/core@7.0.0'
func pnpmPackageName(key string, legacy bool) string {
	k := strings.TrimPrefix(strings.TrimSpace(key), "/")
	if i := strings.IndexByte(k, '('); i >= 0 {
		k = k[:i]
	}
	if k == "" {
		return ""
	}
	if legacy {
		segs := strings.Split(k, "/")
		if strings.HasPrefix(k, "@") {
			if len(segs) < 2 || segs[1] == "" {
				return ""
			}
			return segs[0] + "/" + segs[1]
		}
		return segs[0]
	}
	at := strings.Index(k[1:], "@")
	if at < 0 {
		return k
	}
	return k[:at+1]
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func mappingKeys(node *yaml.Node) []string {
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}
