package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mental-predictor/internal/domain"
	"mental-predictor/internal/feature"
	"mental-predictor/internal/predict"
	"mental-predictor/internal/repository"
)

// PredictionService coordina validacion, cache, llamada al modelo e historial.
type PredictionService struct {
	logger      *zap.Logger
	predictor   predict.Predictor
	cache       PredictionCache
	cacheTTL    time.Duration
	submissions repository.SubmissionRepository
	now         func() time.Time
}

func NewPredictionService(
	logger *zap.Logger,
	predictor predict.Predictor,
	cache PredictionCache,
	cacheTTL time.Duration,
	submissions repository.SubmissionRepository,
) *PredictionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictionService{
		logger:      logger,
		predictor:   predictor,
		cache:       cache,
		cacheTTL:    cacheTTL,
		submissions: submissions,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit valida el input y pide la prediccion.
// Con input incompleto devuelve feature.ErrIncompleteInput sin tocar red,
// cache ni historial. Si falla la prediccion devuelve la Submission
// registrada junto con el error.
func (s *PredictionService) Submit(ctx context.Context, raw feature.RawInput) (domain.Submission, error) {
	if s.predictor == nil {
		return domain.Submission{}, errors.New("prediction service not configured")
	}

	vec, err := feature.Build(raw.Clone())
	if err != nil {
		return domain.Submission{}, err
	}

	sub := domain.Submission{
		ID:        uuid.NewString(),
		Features:  vec,
		CreatedAt: s.now(),
	}

	key, keyErr := CacheKey(vec)
	if keyErr != nil {
		s.logger.Warn("cache key failed", zap.Error(keyErr))
	}
	if cached, ok := s.lookup(ctx, key, keyErr == nil); ok {
		sub.Prediction = cached
		sub.Result = predict.Result{Prediction: cached}.Display()
		sub.CacheHit = true
		s.persist(ctx, sub)
		return sub, nil
	}

	res, err := s.predictor.Predict(ctx, vec)
	if err != nil {
		sub.Error = predict.UserMessage(err)
		s.logger.Warn("prediction failed", zap.Error(err), zap.String("submission_id", sub.ID))
		s.persist(ctx, sub)
		return sub, err
	}

	sub.Prediction = res.Prediction
	sub.Result = res.Display()

	if s.cache != nil && keyErr == nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, res.Prediction, s.cacheTTL); err != nil {
			s.logger.Warn("cache set failed", zap.Error(err))
		}
	}

	s.persist(ctx, sub)
	return sub, nil
}

// History devuelve los intentos mas recientes primero.
func (s *PredictionService) History(ctx context.Context, limit int) ([]domain.Submission, error) {
	if s.submissions == nil {
		return nil, nil
	}
	return s.submissions.ListRecent(ctx, limit)
}

func (s *PredictionService) lookup(ctx context.Context, key string, usable bool) ([]byte, bool) {
	if s.cache == nil || !usable || s.cacheTTL <= 0 {
		return nil, false
	}
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		// El cache es opcional: ante error seguimos contra el modelo.
		s.logger.Warn("cache get failed", zap.Error(err))
		return nil, false
	}
	return cached, ok
}

func (s *PredictionService) persist(ctx context.Context, sub domain.Submission) {
	if s.submissions == nil {
		return
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		s.logger.Warn("persist submission failed", zap.Error(err), zap.String("submission_id", sub.ID))
	}
}
