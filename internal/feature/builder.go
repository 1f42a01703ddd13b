package feature

import (
	"errors"
	"sort"
)

// ErrIncompleteInput indica que al menos un campo quedo vacio. Su texto es
// el mensaje que se muestra al usuario.
var ErrIncompleteInput = errors.New("Please fill in all feature fields.")

// RawInput mapea nombre de feature a texto crudo del formulario.
type RawInput map[string]string

// NewRawInput crea un RawInput con todos los campos del schema en "".
func NewRawInput() RawInput {
	raw := make(RawInput, Count)
	for _, name := range schema {
		raw[name] = ""
	}
	return raw
}

// Clone devuelve una copia independiente. Usar antes de Build si el
// formulario puede seguir editandose.
func (r RawInput) Clone() RawInput {
	out := make(RawInput, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Unknown devuelve, ordenadas, las claves de r que no pertenecen al schema.
func (r RawInput) Unknown() []string {
	var out []string
	for k := range r {
		if !IsKnown(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Build transforma el input crudo en un Vector en orden de schema.
// Una clave ausente cuenta como "". Si algun valor original es "" el vector
// se descarta y devuelve ErrIncompleteInput. Es una funcion pura.
func Build(raw RawInput) (Vector, error) {
	vec := make(Vector, 0, Count)
	incomplete := false
	for _, name := range schema {
		val := raw[name]
		if val == "" {
			incomplete = true
		}
		vec = append(vec, Coerce(val))
	}
	if incomplete {
		return nil, ErrIncompleteInput
	}
	return vec, nil
}
