package service

import (
	"context"
	"time"

	"tudman/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockChatClient ---
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

var _ domain.ChatClient = (*MockChatClient)(nil)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var _ domain.Cache = (*MockCache)(nil)

// --- MockContentExtractor ---
type MockContentExtractor struct {
	mock.Mock
}

func (m *MockContentExtractor) ExtractReadableText(ctx context.Context, pageURL string) (string, error) {
	args := m.Called(ctx, pageURL)
	return args.String(0), args.Error(1)
}

// --- pipeline stage mocks ---
type MockMaterialAcquirer struct {
	mock.Mock
}

func (m *MockMaterialAcquirer) Acquire(ctx context.Context, source domain.Source) (string, error) {
	args := m.Called(ctx, source)
	return args.String(0), args.Error(1)
}

type MockQuizComposer struct {
	mock.Mock
}

func (m *MockQuizComposer) Compose(ctx context.Context, source domain.Source, material string, durationMinutes int) (*domain.Quiz, error) {
	args := m.Called(ctx, source, material, durationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

type MockQuizValidator struct {
	mock.Mock
}

func (m *MockQuizValidator) Validate(quiz *domain.Quiz) (*domain.Quiz, error) {
	args := m.Called(quiz)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

type MockAnswerEvaluator struct {
	mock.Mock
}

func (m *MockAnswerEvaluator) Evaluate(ctx context.Context, question domain.Question, userAnswer string) (*domain.EvaluationResult, error) {
	args := m.Called(ctx, question, userAnswer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationResult), args.Error(1)
}

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, transcript []domain.QARecord) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}
