package predict

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Result es la respuesta exitosa del endpoint. Prediction queda como JSON
// crudo porque el shape depende del modelo.
type Result struct {
	Prediction json.RawMessage `json:"prediction,omitempty"`
}

// Display renderiza la prediccion como la mostraba la pagina: listas
// concatenadas, strings sin comillas, null y booleanos vacios.
func (r Result) Display() string {
	raw := bytes.TrimSpace(r.Prediction)
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	var b strings.Builder
	render(&b, v)
	return b.String()
}

func render(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil, bool:
	case string:
		b.WriteString(t)
	case json.Number:
		b.WriteString(formatNumber(t))
	case []any:
		for _, e := range t {
			render(b, e)
		}
	default:
		data, err := json.Marshal(t)
		if err == nil {
			b.Write(data)
		}
	}
}

func formatNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
