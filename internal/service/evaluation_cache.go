package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tudman/internal/cache"
	"tudman/internal/domain"
	"tudman/internal/logger"

	"go.uber.org/zap"
)

// ErrEvaluationNotCached is returned when no usable grading is cached for an answer.
var ErrEvaluationNotCached = errors.New("evaluation not found in cache")

// EvaluationCacheService stores free-response gradings so that resubmitting
// the same answer to the same question skips the model.
type EvaluationCacheService interface {
	Put(ctx context.Context, key string, result *domain.EvaluationResult) error
	Get(ctx context.Context, key string) (*domain.EvaluationResult, error)
}

type evaluationCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewEvaluationCacheService creates a cache service over c. A nil c gives a
// no-op service that never hits.
func NewEvaluationCacheService(c domain.Cache, ttl time.Duration) EvaluationCacheService {
	if c == nil {
		logger.Get().Info("Evaluation cache disabled")
		return &noopEvaluationCacheService{}
	}
	return &evaluationCacheServiceImpl{
		cache: c,
		ttl:   ttl,
	}
}

// EvaluationCacheKey derives the cache key of a free-response grading from
// everything the grading depends on.
func EvaluationCacheKey(question domain.Question, userAnswer string) string {
	h := sha256.New()
	for _, part := range []string{question.Prompt, question.IdealAnswer, userAnswer} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return cache.GenerateCacheKey("evaluation", "free", hex.EncodeToString(h.Sum(nil)))
}

func (s *evaluationCacheServiceImpl) Put(ctx context.Context, key string, result *domain.EvaluationResult) error {
	if result == nil {
		return domain.NewInvalidInputError("cannot cache nil evaluation")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal evaluation for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache evaluation", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set evaluation to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached evaluation", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *evaluationCacheServiceImpl) Get(ctx context.Context, key string) (*domain.EvaluationResult, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, ErrEvaluationNotCached
		}
		logger.Get().Error("Failed to get evaluation from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get evaluation from cache for key %s", key), err)
	}
	if data == "" {
		return nil, ErrEvaluationNotCached
	}

	var result domain.EvaluationResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		// undecodable entries are evicted and read as a miss
		logger.Get().Warn("Evicting undecodable cached evaluation", zap.Error(err), zap.String("key", key))
		if delErr := s.cache.Delete(ctx, key); delErr != nil {
			logger.Get().Error("Failed to evict cached evaluation", zap.Error(delErr), zap.String("key", key))
		}
		return nil, ErrEvaluationNotCached
	}
	return &result, nil
}

type noopEvaluationCacheService struct{}

func (s *noopEvaluationCacheService) Put(ctx context.Context, key string, result *domain.EvaluationResult) error {
	return nil
}

func (s *noopEvaluationCacheService) Get(ctx context.Context, key string) (*domain.EvaluationResult, error) {
	return nil, ErrEvaluationNotCached
}
