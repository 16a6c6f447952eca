package lockfile

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// YarnLock parsea yarn.lock clásico (v1) y berry (v2+). Solo lee las cabeceras de entrada:
// líneas sin indentación terminadas en ':' con uno o más descriptores "nombre@rango".
type YarnLock struct{}

func (YarnLock) Dialect() string { return "yarn" }

func (YarnLock) Supports(name string) bool { return strings.EqualFold(name, "yarn.lock") }

func (p YarnLock) Parse(content []byte) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			continue // campos de la entrada: version, resolved, dependencies...
		}
		if !strings.HasSuffix(line, ":") {
			return nil, malformed(p.Dialect(), fmt.Errorf("línea %d: cabecera sin ':'", lineNo))
		}
		header := strings.TrimSuffix(line, ":")
		if strings.Trim(header, `"`) == "__metadata" {
			continue
		}
		for _, desc := range strings.Split(header, ",") {
			desc = strings.Trim(strings.TrimSpace(desc), `"`)
			if desc == "" {
				continue
			}
			name, ok := yarnDescriptorName(desc)
			if !ok {
				return nil, malformed(p.Dialect(), fmt.Errorf("línea %d: descriptor %q sin nombre", lineNo, desc))
			}
			if strings.Contains(desc, "@workspace:") {
				continue // el propio proyecto o un workspace local
			}
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, malformed(p.Dialect(), err)
	}
	return names, nil
}

// yarnDescriptorName toma el texto antes del primer '@' que no abre un scope.
// "lodash@^4" → lodash, "@babel/core@npm:^7" → @babel/core.
func yarnDescriptorName(desc string) (string, bool) {
	if len(desc) < 2 {
		return "", false
	}
	at := strings.Index(desc[1:], "@")
	if at < 0 {
		return "", false
	}
	name := desc[:at+1]
	if name == "@" || strings.HasSuffix(name, "/") {
		return "", false
	}
	return name, true
}
