package feature

import (
	"bytes"
	"errors"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind distingue las dos variantes de Value.
type Kind uint8

const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ErrInvalidValue se devuelve al decodificar algo que no es number ni string.
var ErrInvalidValue = errors.New("feature value must be a number or a string")

// Value es un valor tipado de feature: Number o Text.
// El zero value es Text("").
type Value struct {
	kind Kind
	num  float64
	text string
}

// Number construye un Value numerico.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Text construye un Value de texto. El string se guarda tal cual.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float devuelve el numero y true si v es Number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Str devuelve el texto y true si v es Text.
func (v Value) Str() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// String formatea el valor para mostrarlo o loguearlo.
func (v Value) String() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.text
}

// MarshalJSON emite un number o un string JSON. Los infinitos salen como
// null y -0 como 0, igual que JSON.stringify en el formulario web.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind != KindNumber {
		return json.Marshal(v.text)
	}
	switch {
	case math.IsInf(v.num, 0) || math.IsNaN(v.num):
		return []byte("null"), nil
	case v.num == 0:
		return []byte("0"), nil
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON acepta un string, un number o null. null es lo que
// MarshalJSON emite para valores no finitos y vuelve como Number(NaN).
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidValue
	}
	if string(data) == "null" {
		*v = Number(math.NaN())
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*v = Number(f)
		return nil
	default:
		return ErrInvalidValue
	}
}

// Vector es la secuencia ordenada de valores, una por entrada del schema.
type Vector []Value

// Payload es el body que espera POST /predict.
type Payload struct {
	Features Vector `json:"features"`
}

// Payload envuelve el vector con el shape del endpoint.
func (v Vector) Payload() Payload {
	return Payload{Features: v}
}

// Equal compara dos vectores elemento a elemento.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}
