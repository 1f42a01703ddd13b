package encoding

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownCategory indica un valor fuera de las clases del encoder.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrNotNumeric indica texto en una columna numerica.
	ErrNotNumeric = errors.New("value is not numeric")
)

// UnseenLabelError describe el valor que el encoder no conoce.
type UnseenLabelError struct {
	Label  string
	Quoted bool
}

func (e *UnseenLabelError) Error() string {
	if e.Quoted {
		return fmt.Sprintf("y contains previously unseen labels: ['%s']", e.Label)
	}
	return fmt.Sprintf("y contains previously unseen labels: [%s]", e.Label)
}

func (e *UnseenLabelError) Is(target error) bool {
	return target == ErrUnknownCategory
}

// LabelEncoder asigna a cada clase su indice en orden lexicografico,
// igual que un LabelEncoder ajustado sobre esas categorias.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder ordena y deduplica las categorias.
func NewLabelEncoder(categories ...string) *LabelEncoder {
	seen := make(map[string]struct{}, len(categories))
	classes := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		classes = append(classes, c)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

// Classes devuelve una copia de las clases ordenadas.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Has indica si label es una clase conocida.
func (e *LabelEncoder) Has(label string) bool {
	_, ok := e.index[label]
	return ok
}

// Transform devuelve el codigo de label o un *UnseenLabelError.
func (e *LabelEncoder) Transform(label string) (int, error) {
	code, ok := e.index[label]
	if !ok {
		return 0, &UnseenLabelError{Label: label, Quoted: true}
	}
	return code, nil
}

// Inverse devuelve la clase para un codigo.
func (e *LabelEncoder) Inverse(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("%w: code %d out of range", ErrUnknownCategory, code)
	}
	return e.classes[code], nil
}
