package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"tudman/internal/domain"
	"tudman/internal/logger"
	"tudman/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	feedbackCorrect   = "درست"
	feedbackIncorrect = "نادرست"
)

// answerEvaluator implements domain.AnswerEvaluator
type answerEvaluator struct {
	llm   domain.ChatClient
	cache EvaluationCacheService
	group singleflight.Group
}

// NewAnswerEvaluator creates an evaluator. MCQ answers are graded locally;
// free responses go to llm. A nil evaluationCache disables caching.
func NewAnswerEvaluator(llm domain.ChatClient, evaluationCache EvaluationCacheService) domain.AnswerEvaluator {
	if evaluationCache == nil {
		evaluationCache = &noopEvaluationCacheService{}
	}
	return &answerEvaluator{
		llm:   llm,
		cache: evaluationCache,
	}
}

func (e *answerEvaluator) Evaluate(ctx context.Context, question domain.Question, userAnswer string) (*domain.EvaluationResult, error) {
	switch question.Type {
	case domain.QuestionTypeMCQ:
		return evaluateMCQ(question, userAnswer), nil
	case domain.QuestionTypeFree:
		return e.evaluateFree(ctx, question, userAnswer)
	default:
		return nil, domain.NewInvalidInputError("question.type must be one of mcq, free")
	}
}

// evaluateMCQ compares the numeric reading of userAnswer with the answer
// index. A blank answer reads as 0; anything else that is not a number is
// incorrect.
func evaluateMCQ(question domain.Question, userAnswer string) *domain.EvaluationResult {
	var picked float64
	var err error
	if trimmed := strings.TrimSpace(userAnswer); trimmed != "" {
		picked, err = strconv.ParseFloat(trimmed, 64)
	}
	correct := err == nil && picked == float64(question.AnswerIndex)
	if correct {
		return &domain.EvaluationResult{Correct: true, Score: 1, Feedback: feedbackCorrect}
	}
	return &domain.EvaluationResult{Correct: false, Score: 0, Feedback: feedbackIncorrect}
}

func (e *answerEvaluator) evaluateFree(ctx context.Context, question domain.Question, userAnswer string) (*domain.EvaluationResult, error) {
	key := EvaluationCacheKey(question, userAnswer)

	// callers that join share one grading, so it must outlive the first caller's cancellation
	gradeCtx := context.WithoutCancel(ctx)
	v, err, shared := e.group.Do(key, func() (interface{}, error) {
		return e.gradeFree(gradeCtx, key, question, userAnswer)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Shared an in-flight grading", zap.String("question_id", question.ID))
	}
	result := *v.(*domain.EvaluationResult)
	return &result, nil
}

func (e *answerEvaluator) gradeFree(ctx context.Context, key string, question domain.Question, userAnswer string) (*domain.EvaluationResult, error) {
	l := logger.Get()

	cached, err := e.cache.Get(ctx, key)
	switch {
	case err == nil:
		metrics.ObserveEvaluationCache(true)
		l.Debug("Evaluation cache hit", zap.String("question_id", question.ID))
		return cached, nil
	case errors.Is(err, ErrEvaluationNotCached):
		metrics.ObserveEvaluationCache(false)
	default:
		// cache failures fall through to the model
		metrics.ObserveEvaluationCache(false)
		l.Warn("Evaluation cache lookup failed", zap.Error(err), zap.String("question_id", question.ID))
	}

	messages, err := buildGradingMessages(question, userAnswer)
	if err != nil {
		return nil, domain.NewInternalError("Failed to build grading prompt", err)
	}

	content, err := e.llm.Chat(ctx, domain.ChatRequest{
		Messages: messages,
		JSONMode: true,
	})
	if err != nil {
		return nil, domain.NewUpstreamError(err)
	}

	var raw rawEvaluation
	if err := decodeModelJSON(content, &raw); err != nil {
		l.Warn("Model returned an unusable grading", zap.Error(err), zap.String("question_id", question.ID))
		return nil, domain.NewMalformedResponseError(err)
	}
	result := raw.toResult()

	if err := e.cache.Put(ctx, key, result); err != nil {
		l.Warn("Failed to cache evaluation", zap.Error(err), zap.String("question_id", question.ID))
	}

	l.Info("Graded free response",
		zap.String("question_id", question.ID),
		zap.Bool("correct", result.Correct),
		zap.Float64("score", result.Score))
	return result, nil
}
