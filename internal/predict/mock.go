package predict

import (
	"context"

	"mental-predictor/internal/feature"
)

// MockClient permite tests sin llamar al endpoint real.
type MockClient struct {
	Result Result
	Err    error

	Calls int
	Last  feature.Vector
}

func (m *MockClient) Predict(ctx context.Context, vec feature.Vector) (Result, error) {
	m.Calls++
	m.Last = vec
	return m.Result, m.Err
}
