package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/floats"

	"mental-predictor/internal/feature"
)

var (
	// ErrNotLoaded se usa cuando el servidor arranca sin modelo.
	ErrNotLoaded = errors.New("Model not loaded")
	// ErrDimension indica una fila con una cantidad de columnas distinta a la del modelo.
	ErrDimension = errors.New("feature dimension mismatch")
	// ErrInvalidModel indica un archivo de modelo inconsistente.
	ErrInvalidModel = errors.New("invalid model")
)

// Model predice una etiqueta a partir de una fila ya codificada.
type Model interface {
	Predict(ctx context.Context, row []float64) (any, error)
	Info() Info
}

// Info resume lo que se sabe del modelo cargado.
type Info struct {
	Type         string   `json:"type"`
	FeatureNames []string `json:"feature_names"`
	NFeaturesIn  int      `json:"n_features_in"`
	Classes      []any    `json:"classes,omitempty"`
}

// LogisticModel es una regresion logistica binaria serializada en JSON.
type LogisticModel struct {
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	Classes      []any     `json:"classes"`
	Threshold    float64   `json:"threshold,omitempty"`
	FeatureNames []string  `json:"feature_names,omitempty"`
}

// Load lee y valida un LogisticModel desde path.
func Load(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate comprueba dimensiones y completa el threshold por defecto.
func (m *LogisticModel) Validate() error {
	if len(m.Weights) != feature.Count {
		return fmt.Errorf("%w: expected %d weights, got %d", ErrInvalidModel, feature.Count, len(m.Weights))
	}
	if len(m.Classes) != 2 {
		return fmt.Errorf("%w: expected 2 classes, got %d", ErrInvalidModel, len(m.Classes))
	}
	if m.Threshold == 0 {
		m.Threshold = 0.5
	}
	if m.Threshold < 0 || m.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v out of [0,1]", ErrInvalidModel, m.Threshold)
	}
	if len(m.FeatureNames) > 0 {
		if len(m.FeatureNames) != feature.Count {
			return fmt.Errorf("%w: expected %d feature names, got %d", ErrInvalidModel, feature.Count, len(m.FeatureNames))
		}
		for i, name := range m.FeatureNames {
			if name != feature.Name(i) {
				return fmt.Errorf("%w: feature %d is %q, expected %q", ErrInvalidModel, i, name, feature.Name(i))
			}
		}
	}
	return nil
}

// Probability devuelve P(clase positiva | row).
func (m *LogisticModel) Probability(row []float64) (float64, error) {
	if len(row) != len(m.Weights) {
		return 0, fmt.Errorf("%w: model expects %d features, got %d", ErrDimension, len(m.Weights), len(row))
	}
	z := floats.Dot(m.Weights, row) + m.Bias
	return 1 / (1 + math.Exp(-z)), nil
}

func (m *LogisticModel) Predict(_ context.Context, row []float64) (any, error) {
	p, err := m.Probability(row)
	if err != nil {
		return nil, err
	}
	if p >= m.Threshold {
		return m.Classes[1], nil
	}
	return m.Classes[0], nil
}

func (m *LogisticModel) Info() Info {
	names := m.FeatureNames
	if len(names) == 0 {
		names = feature.Names()
	}
	return Info{
		Type:         "logistic_regression",
		FeatureNames: names,
		NFeaturesIn:  len(m.Weights),
		Classes:      m.Classes,
	}
}
