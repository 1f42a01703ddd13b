package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mental-predictor/internal/domain"
	"mental-predictor/internal/feature"
	"mental-predictor/internal/predict"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrSubmitting   = errors.New("submission already in progress")
)

// Phase es la etapa del ciclo editing -> submitting -> editing.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
)

func (p Phase) String() string {
	if p == PhaseSubmitting {
		return "submitting"
	}
	return "editing"
}

// Submitter es quien valida y envia el formulario. PredictionService lo implementa.
type Submitter interface {
	Submit(ctx context.Context, raw feature.RawInput) (domain.Submission, error)
}

// View es una foto inmutable del estado para renderizar.
type View struct {
	Fields feature.RawInput
	Result string
	Error  string
	Phase  Phase
}

// State es el estado de una sesion de formulario: valores de campos, ultimo
// resultado y ultimo error. Result y Error nunca estan ambos presentes.
type State struct {
	mu     sync.Mutex
	fields feature.RawInput
	result string
	errMsg string
	phase  Phase
}

// NewState crea un formulario con todos los campos vacios.
func NewState() *State {
	return &State{fields: feature.NewRawInput()}
}

// Set actualiza un campo. No borra el ultimo resultado ni error.
func (s *State) Set(name, value string) error {
	if !feature.IsKnown(name) {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[name] = value
	return nil
}

// Value devuelve el valor actual de un campo.
func (s *State) Value(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[name]
}

// Snapshot copia los campos actuales.
func (s *State) Snapshot() feature.RawInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields.Clone()
}

// View devuelve el estado completo.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Fields: s.fields.Clone(),
		Result: s.result,
		Error:  s.errMsg,
		Phase:  s.phase,
	}
}

// Reset vacia los campos y descarta resultado y error.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = feature.NewRawInput()
	s.result = ""
	s.errMsg = ""
	s.phase = PhaseEditing
}

// Submit envia una copia de los campos. El lock no se mantiene durante la
// llamada, asi las ediciones concurrentes no afectan al envio en curso.
func (s *State) Submit(ctx context.Context, submitter Submitter) error {
	s.mu.Lock()
	if s.phase == PhaseSubmitting {
		s.mu.Unlock()
		return ErrSubmitting
	}
	snapshot := s.fields.Clone()
	s.phase = PhaseSubmitting
	s.mu.Unlock()

	sub, err := submitter.Submit(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseEditing
	if err != nil {
		s.result = ""
		s.errMsg = predict.UserMessage(err)
		return err
	}
	s.result = sub.Result
	s.errMsg = ""
	return nil
}
