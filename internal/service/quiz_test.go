package service

import (
	"context"
	"errors"
	"testing"

	"tudman/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pipelineMocks struct {
	acquirer   *MockMaterialAcquirer
	composer   *MockQuizComposer
	validator  *MockQuizValidator
	evaluator  *MockAnswerEvaluator
	summarizer *MockSummarizer
}

func newTestQuizService() (QuizService, pipelineMocks) {
	m := pipelineMocks{
		acquirer:   new(MockMaterialAcquirer),
		composer:   new(MockQuizComposer),
		validator:  new(MockQuizValidator),
		evaluator:  new(MockAnswerEvaluator),
		summarizer: new(MockSummarizer),
	}
	return NewQuizService(m.acquirer, m.composer, m.validator, m.evaluator, m.summarizer), m
}

func TestQuizService_GenerateQuiz(t *testing.T) {
	ctx := context.Background()
	source := domain.Source{Kind: domain.SourceKindURL, Value: "https://example.com/article"}
	quiz := domain.NewQuiz(source, 1, []domain.Question{
		domain.NewMCQQuestion("m1", "؟", []string{"a", "b", "c", "d"}, 1),
		domain.NewFreeQuestion("f1", "؟", "پاسخ"),
	})

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestQuizService()
		m.acquirer.On("Acquire", ctx, source).Return("متن مقاله", nil).Once()
		m.composer.On("Compose", ctx, source, "متن مقاله", 1).Return(quiz, nil).Once()
		m.validator.On("Validate", quiz).Return(quiz, nil).Once()

		got, err := svc.GenerateQuiz(ctx, source, 1)
		require.NoError(t, err)
		assert.Same(t, quiz, got)
		m.acquirer.AssertExpectations(t)
		m.composer.AssertExpectations(t)
		m.validator.AssertExpectations(t)
	})

	t.Run("Fetch failure stops the pipeline", func(t *testing.T) {
		svc, m := newTestQuizService()
		fetchErr := domain.NewFetchError(source.Value, errors.New("Fetch failed 404"))
		m.acquirer.On("Acquire", ctx, source).Return("", fetchErr).Once()

		_, err := svc.GenerateQuiz(ctx, source, 1)
		assert.ErrorIs(t, err, fetchErr)
		m.composer.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Composer failure", func(t *testing.T) {
		svc, m := newTestQuizService()
		malformed := domain.NewMalformedResponseError(errors.New("bad json"))
		m.acquirer.On("Acquire", ctx, source).Return("x", nil).Once()
		m.composer.On("Compose", ctx, source, "x", 1).Return(nil, malformed).Once()

		_, err := svc.GenerateQuiz(ctx, source, 1)
		assert.ErrorIs(t, err, malformed)
		m.validator.AssertNotCalled(t, "Validate", mock.Anything)
	})

	t.Run("Validator rejection", func(t *testing.T) {
		svc, m := newTestQuizService()
		violation := domain.NewSchemaViolationError(errors.New("options: minItems 4"))
		m.acquirer.On("Acquire", ctx, source).Return("x", nil).Once()
		m.composer.On("Compose", ctx, source, "x", 1).Return(quiz, nil).Once()
		m.validator.On("Validate", quiz).Return(nil, violation).Once()

		got, err := svc.GenerateQuiz(ctx, source, 1)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, violation)
	})
}

func TestQuizService_EvaluateAndSummarize(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestQuizService()

	question := domain.NewMCQQuestion("m1", "؟", []string{"a", "b", "c", "d"}, 2)
	expected := &domain.EvaluationResult{Correct: true, Score: 1, Feedback: "درست"}
	m.evaluator.On("Evaluate", ctx, question, "2").Return(expected, nil).Once()

	result, err := svc.EvaluateAnswer(ctx, question, "2")
	require.NoError(t, err)
	assert.Equal(t, expected, result)

	transcript := []domain.QARecord{{Prompt: strPtr("؟"), Type: domain.QuestionTypeMCQ}}
	m.summarizer.On("Summarize", ctx, transcript).Return("# خلاصه", nil).Once()

	summary, err := svc.Summarize(ctx, transcript)
	require.NoError(t, err)
	assert.Equal(t, "# خلاصه", summary)

	m.evaluator.AssertExpectations(t)
	m.summarizer.AssertExpectations(t)
}
