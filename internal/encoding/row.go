package encoding

import (
	"errors"
	"fmt"
	"math"

	"mental-predictor/internal/feature"
)

// fallbackCategory es la clase a la que se mapean paises desconocidos.
const fallbackCategory = "Other"

// RowEncoder convierte un FeatureVector en la fila numerica que consume el
// modelo: columnas categoricas via LabelEncoder, el resto tal cual.
type RowEncoder struct {
	encoders  map[string]*LabelEncoder
	fallbacks map[string]string
}

// NewRowEncoder arma un encoder con las categorias dadas por feature.
// fallbacks mapea feature a la clase usada para valores desconocidos.
func NewRowEncoder(categories map[string][]string, fallbacks map[string]string) (*RowEncoder, error) {
	encoders := make(map[string]*LabelEncoder, len(categories))
	for name, cats := range categories {
		if !feature.IsKnown(name) {
			return nil, fmt.Errorf("categories for unknown feature %q", name)
		}
		encoders[name] = NewLabelEncoder(cats...)
	}
	for name, fb := range fallbacks {
		enc, ok := encoders[name]
		if !ok {
			return nil, fmt.Errorf("fallback for non categorical feature %q", name)
		}
		if !enc.Has(fb) {
			return nil, fmt.Errorf("fallback %q is not a class of %q", fb, name)
		}
	}
	return &RowEncoder{encoders: encoders, fallbacks: fallbacks}, nil
}

// DefaultCategories son las clases con las que se ajustaron los encoders
// del servicio de prediccion.
func DefaultCategories() map[string][]string {
	yesNo := func() []string { return []string{"Yes", "No"} }
	return map[string][]string{
		feature.Gender:                {"Male", "Female", "Other"},
		feature.Country:               {"Kenya", "USA", "UK", "Other"},
		feature.Occupation:            {"Teacher", "Engineer", "Doctor", "Other"},
		feature.SelfEmployed:          yesNo(),
		feature.FamilyHistory:         yesNo(),
		feature.Treatment:             yesNo(),
		feature.MentalHealthHistory:   yesNo(),
		feature.MoodSwings:            yesNo(),
		feature.CopingStruggles:       {"Never", "Sometimes", "Often"},
		feature.WorkInterest:          {"Low", "Medium", "High"},
		feature.SocialWeakness:        {"Low", "Medium", "High"},
		feature.MentalHealthInterview: yesNo(),
		feature.CareOptions:           yesNo(),
	}
}

// NewDefaultRowEncoder usa DefaultCategories y manda paises desconocidos a "Other".
func NewDefaultRowEncoder() *RowEncoder {
	enc, err := NewRowEncoder(DefaultCategories(), map[string]string{feature.Country: fallbackCategory})
	if err != nil {
		panic(err)
	}
	return enc
}

// IsCategorical indica si la columna name pasa por un LabelEncoder.
func (r *RowEncoder) IsCategorical(name string) bool {
	_, ok := r.encoders[name]
	return ok
}

// Classes devuelve las clases de una columna categorica.
func (r *RowEncoder) Classes(name string) []string {
	enc, ok := r.encoders[name]
	if !ok {
		return nil
	}
	return enc.Classes()
}

// Encode produce una fila de feature.Count valores en orden de schema.
func (r *RowEncoder) Encode(vec feature.Vector) ([]float64, error) {
	if len(vec) != feature.Count {
		return nil, fmt.Errorf("%d columns passed, passed data had %d columns", feature.Count, len(vec))
	}
	row := make([]float64, feature.Count)
	for i, v := range vec {
		name := feature.Name(i)
		enc, categorical := r.encoders[name]
		if !categorical {
			f, ok := v.Float()
			if !ok {
				return nil, fmt.Errorf("%w: could not convert string to float: '%s'", ErrNotNumeric, v.String())
			}
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return nil, fmt.Errorf("%w: input contains infinity or NaN in feature '%s'", ErrNotNumeric, name)
			}
			row[i] = f
			continue
		}

		label := v.String()
		if fb, ok := r.fallbacks[name]; ok && !enc.Has(label) {
			label = fb
		}
		code, err := enc.Transform(label)
		if err != nil {
			var unseen *UnseenLabelError
			if errors.As(err, &unseen) {
				unseen.Quoted = !v.IsNumber()
			}
			return nil, fmt.Errorf("Unknown category in feature '%s': %w", name, err)
		}
		row[i] = float64(code)
	}
	return row, nil
}
