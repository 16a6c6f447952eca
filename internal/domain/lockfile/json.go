package lockfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// jsonField par clave/valor de un objeto JSON conservando el orden del documento.
type jsonField struct {
	Key   string
	Value json.RawMessage
}

var errNotObject = errors.New("se esperaba un objeto JSON")

// orderedObject decodifica un objeto JSON en sus campos, en orden de aparición.
// Un map perdería ese orden.
func orderedObject(raw []byte) ([]jsonField, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}
	var fields []jsonField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("clave inválida %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, jsonField{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("contenido adicional después del objeto")
	}
	return fields, nil
}

// field busca la clave en fields; ok=false si no existe o su valor es null.
func field(fields []jsonField, key string) (json.RawMessage, bool) {
	for _, f := range fields {
		if f.Key == key {
			if bytes.Equal(bytes.TrimSpace(f.Value), []byte("null")) {
				return nil, false
			}
			return f.Value, true
		}
	}
	return nil, false
}

// isObject informa si el valor JSON es un objeto (tolerancia: otros tipos se ignoran).
func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
