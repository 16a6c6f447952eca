package lockfile

import (
	"bytes"
	"encoding/json"
	"strings"
)

const nodeModules = "node_modules/"

// PackageLock parsea package-lock.json y npm-shrinkwrap.json (lockfileVersion 1, 2 y 3).
type PackageLock struct{}

func (PackageLock) Dialect() string { return "package-lock" }

func (PackageLock) Supports(name string) bool {
	return strings.EqualFold(name, "package-lock.json") || strings.EqualFold(name, "npm-shrinkwrap.json")
}

// Parse usa el mapa "packages" (v2/v3) si existe; si no, recorre el árbol "dependencies" (v1).
func (p PackageLock) Parse(content []byte) ([]string, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}
	root, err := orderedObject(content)
	if err != nil {
		return nil, malformed(p.Dialect(), err)
	}

	if raw, ok := field(root, "packages"); ok && isObject(raw) {
		entries, err := orderedObject(raw)
		if err != nil {
			return nil, malformed(p.Dialect(), err)
		}
		var names []string
		for _, e := range entries {
			// "" es el proyecto raíz; claves sin node_modules/ son workspaces locales.
			idx := strings.LastIndex(e.Key, nodeModules)
			if idx < 0 {
				continue
			}
			if name := e.Key[idx+len(nodeModules):]; name != "" {
				names = append(names, name)
			}
		}
		return names, nil
	}

	if raw, ok := field(root, "dependencies"); ok && isObject(raw) {
		var names []string
		if err := walkDependencies(raw, &names); err != nil {
			return nil, malformed(p.Dialect(), err)
		}
		return names, nil
	}
	return nil, nil
}

// walkDependencies recorre en profundidad el árbol "dependencies" de lockfileVersion 1.
func walkDependencies(raw json.RawMessage, names *[]string) error {
	deps, err := orderedObject(raw)
	if err != nil {
		return err
	}
	for _, d := range deps {
		if d.Key == "" {
			continue
		}
		*names = append(*names, d.Key)
		if !isObject(d.Value) {
			continue
		}
		entry, err := orderedObject(d.Value)
		if err != nil {
			return err
		}
		if nested, ok := field(entry, "dependencies"); ok && isObject(nested) {
			if err := walkDependencies(nested, names); err != nil {
				return err
			}
		}
	}
	return nil
}
