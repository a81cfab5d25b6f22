package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tudman/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationCacheKey(t *testing.T) {
	q := domain.NewFreeQuestion("f1", "سوال", "پاسخ ایده‌آل")

	key := EvaluationCacheKey(q, "پاسخ دانش‌آموز")
	assert.True(t, strings.HasPrefix(key, "tudman:evaluation:free:"))
	assert.Equal(t, key, EvaluationCacheKey(q, "پاسخ دانش‌آموز"), "keys are deterministic")

	// the id is not part of the grading
	other := domain.NewFreeQuestion("f2", "سوال", "پاسخ ایده‌آل")
	assert.Equal(t, key, EvaluationCacheKey(other, "پاسخ دانش‌آموز"))

	assert.NotEqual(t, key, EvaluationCacheKey(q, "پاسخ دیگر"))
	assert.NotEqual(t, key, EvaluationCacheKey(domain.NewFreeQuestion("f1", "سوال دیگر", "پاسخ ایده‌آل"), "پاسخ دانش‌آموز"))

	// parts are delimited, so shifting text between them changes the key
	a := EvaluationCacheKey(domain.NewFreeQuestion("", "ab", "c"), "d")
	b := EvaluationCacheKey(domain.NewFreeQuestion("", "a", "bc"), "d")
	assert.NotEqual(t, a, b)
}

func TestEvaluationCacheService(t *testing.T) {
	ctx := context.Background()
	key := "tudman:evaluation:free:abc"
	ttl := 24 * time.Hour

	t.Run("Put and Get", func(t *testing.T) {
		mockCache := new(MockCache)
		svc := NewEvaluationCacheService(mockCache, ttl)
		result := &domain.EvaluationResult{Correct: true, Score: 0.8, Feedback: "خوب"}
		data := `{"correct":true,"score":0.8,"feedback":"خوب"}`

		mockCache.On("Set", ctx, key, data, ttl).Return(nil).Once()
		require.NoError(t, svc.Put(ctx, key, result))

		mockCache.On("Get", ctx, key).Return(data, nil).Once()
		got, err := svc.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, result, got)
		mockCache.AssertExpectations(t)
	})

	t.Run("Miss", func(t *testing.T) {
		mockCache := new(MockCache)
		mockCache.On("Get", ctx, key).Return("", domain.ErrCacheMiss).Once()
		_, err := NewEvaluationCacheService(mockCache, ttl).Get(ctx, key)
		assert.ErrorIs(t, err, ErrEvaluationNotCached)
	})

	t.Run("Empty value is a miss", func(t *testing.T) {
		mockCache := new(MockCache)
		mockCache.On("Get", ctx, key).Return("", nil).Once()
		_, err := NewEvaluationCacheService(mockCache, ttl).Get(ctx, key)
		assert.ErrorIs(t, err, ErrEvaluationNotCached)
	})

	t.Run("Corrupt value is evicted and reported as a miss", func(t *testing.T) {
		mockCache := new(MockCache)
		mockCache.On("Get", ctx, key).Return("{not json", nil).Once()
		mockCache.On("Delete", ctx, key).Return(nil).Once()
		_, err := NewEvaluationCacheService(mockCache, ttl).Get(ctx, key)
		assert.ErrorIs(t, err, ErrEvaluationNotCached)
		mockCache.AssertExpectations(t)
	})

	t.Run("Corrupt value stays a miss when eviction fails", func(t *testing.T) {
		mockCache := new(MockCache)
		mockCache.On("Get", ctx, key).Return("{not json", nil).Once()
		mockCache.On("Delete", ctx, key).Return(errors.New("READONLY")).Once()
		_, err := NewEvaluationCacheService(mockCache, ttl).Get(ctx, key)
		assert.ErrorIs(t, err, ErrEvaluationNotCached)
		mockCache.AssertExpectations(t)
	})

	t.Run("Backend error", func(t *testing.T) {
		mockCache := new(MockCache)
		backendErr := errors.New("i/o timeout")
		mockCache.On("Get", ctx, key).Return("", backendErr).Once()
		_, err := NewEvaluationCacheService(mockCache, ttl).Get(ctx, key)
		assert.ErrorIs(t, err, backendErr)
		assert.NotErrorIs(t, err, ErrEvaluationNotCached)
	})

	t.Run("Nil result is rejected", func(t *testing.T) {
		err := NewEvaluationCacheService(new(MockCache), ttl).Put(ctx, key, nil)
		assert.Error(t, err)
	})

	t.Run("Nil cache is a no-op", func(t *testing.T) {
		svc := NewEvaluationCacheService(nil, ttl)
		assert.NoError(t, svc.Put(ctx, key, &domain.EvaluationResult{}))
		_, err := svc.Get(ctx, key)
		assert.ErrorIs(t, err, ErrEvaluationNotCached)
	})
}
