package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mental-predictor/internal/domain"
)

// SubmissionRepository define el contrato de persistencia del historial.
type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.Submission) error
	ListRecent(ctx context.Context, limit int) ([]domain.Submission, error)
}

// PgSubmissionRepository implementa SubmissionRepository usando pgxpool.
type PgSubmissionRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPgSubmissionRepository(pool *pgxpool.Pool, logger *zap.Logger) *PgSubmissionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PgSubmissionRepository{pool: pool, logger: logger}
}

// encodeSubmissionColumns prepara las columnas JSONB. Sin prediccion la
// columna queda NULL.
func encodeSubmissionColumns(submission domain.Submission) (string, interface{}, error) {
	features, err := json.Marshal(submission.Features)
	if err != nil {
		return "", nil, fmt.Errorf("marshal features: %w", err)
	}
	var prediction interface{}
	if len(submission.Prediction) > 0 {
		prediction = string(submission.Prediction)
	}
	return string(features), prediction, nil
}

// decodeSubmissionColumns es la inversa de encodeSubmissionColumns.
func decodeSubmissionColumns(s *domain.Submission, features, prediction []byte) error {
	if err := json.Unmarshal(features, &s.Features); err != nil {
		return fmt.Errorf("unmarshal features for %s: %w", s.ID, err)
	}
	if len(prediction) > 0 {
		s.Prediction = json.RawMessage(prediction)
	}
	return nil
}

func (r *PgSubmissionRepository) Create(ctx context.Context, submission domain.Submission) error {
	const query = `
		INSERT INTO submissions (id, features, prediction, result, error, cache_hit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	features, prediction, err := encodeSubmissionColumns(submission)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		submission.ID,
		features,
		prediction,
		submission.Result,
		submission.Error,
		submission.CacheHit,
		submission.CreatedAt,
	)
	return err
}

func (r *PgSubmissionRepository) ListRecent(ctx context.Context, limit int) ([]domain.Submission, error) {
	const query = `
		SELECT id, features, prediction, result, error, cache_hit, created_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []domain.Submission
	for rows.Next() {
		var (
			s          domain.Submission
			features   []byte
			prediction []byte
		)
		err = rows.Scan(
			&s.ID,
			&features,
			&prediction,
			&s.Result,
			&s.Error,
			&s.CacheHit,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := decodeSubmissionColumns(&s, features, prediction); err != nil {
			// La fila ilegible se saltea; el resto del historial se devuelve.
			r.logger.Warn("skip unreadable submission", zap.String("submission_id", s.ID), zap.Error(err))
			continue
		}
		submissions = append(submissions, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}

// MemorySubmissionRepository guarda el historial en memoria. Se usa cuando
// no hay DATABASE_URL y en tests.
type MemorySubmissionRepository struct {
	mu    sync.Mutex
	items []domain.Submission
}

func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{}
}

func (r *MemorySubmissionRepository) Create(_ context.Context, submission domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, submission)
	return nil
}

func (r *MemorySubmissionRepository) ListRecent(_ context.Context, limit int) ([]domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 || limit > len(r.items) {
		limit = len(r.items)
	}
	out := make([]domain.Submission, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}
