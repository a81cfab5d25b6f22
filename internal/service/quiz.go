package service

import (
	"context"

	"tudman/internal/domain"
	"tudman/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, source domain.Source, durationMinutes int) (*domain.Quiz, error)
	EvaluateAnswer(ctx context.Context, question domain.Question, userAnswer string) (*domain.EvaluationResult, error)
	Summarize(ctx context.Context, transcript []domain.QARecord) (string, error)
}

// quizService implements QuizService
type quizService struct {
	acquirer   domain.MaterialAcquirer
	composer   domain.QuizComposer
	validator  domain.QuizValidator
	evaluator  domain.AnswerEvaluator
	summarizer domain.Summarizer
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	acquirer domain.MaterialAcquirer,
	composer domain.QuizComposer,
	validator domain.QuizValidator,
	evaluator domain.AnswerEvaluator,
	summarizer domain.Summarizer,
) QuizService {
	return &quizService{
		acquirer:   acquirer,
		composer:   composer,
		validator:  validator,
		evaluator:  evaluator,
		summarizer: summarizer,
	}
}

// GenerateQuiz runs acquire, compose and validate in order. The validator
// always has the last word before a quiz is returned.
func (s *quizService) GenerateQuiz(ctx context.Context, source domain.Source, durationMinutes int) (*domain.Quiz, error) {
	material, err := s.acquirer.Acquire(ctx, source)
	if err != nil {
		return nil, err
	}

	quiz, err := s.composer.Compose(ctx, source, material, durationMinutes)
	if err != nil {
		return nil, err
	}

	validated, err := s.validator.Validate(quiz)
	if err != nil {
		logger.Get().Warn("Generated quiz rejected", zap.Error(err), zap.Int("questions", len(quiz.Questions)))
		return nil, err
	}

	logger.Get().Info("Quiz generated",
		zap.String("source_kind", string(source.Kind)),
		zap.Int("duration_minutes", durationMinutes),
		zap.Int("questions", len(validated.Questions)))
	return validated, nil
}

// EvaluateAnswer implements QuizService
func (s *quizService) EvaluateAnswer(ctx context.Context, question domain.Question, userAnswer string) (*domain.EvaluationResult, error) {
	return s.evaluator.Evaluate(ctx, question, userAnswer)
}

// Summarize implements QuizService
func (s *quizService) Summarize(ctx context.Context, transcript []domain.QARecord) (string, error) {
	return s.summarizer.Summarize(ctx, transcript)
}
