package service

import (
	"context"

	"tudman/internal/domain"
	"tudman/internal/logger"

	"go.uber.org/zap"
)

// quizComposer implements domain.QuizComposer
type quizComposer struct {
	llm domain.ChatClient
}

// NewQuizComposer creates a composer that asks llm for the questions.
func NewQuizComposer(llm domain.ChatClient) domain.QuizComposer {
	return &quizComposer{llm: llm}
}

// Compose asks the model for 2*durationMinutes questions, coerces whatever
// comes back, interleaves MCQ and free questions starting with an MCQ and
// keeps at most the requested total. A short answer yields a short quiz.
func (c *quizComposer) Compose(ctx context.Context, source domain.Source, material string, durationMinutes int) (*domain.Quiz, error) {
	total, numMCQ, numFree := domain.QuestionCounts(durationMinutes)

	messages, err := buildQuizMessages(material, numMCQ, numFree)
	if err != nil {
		return nil, domain.NewInternalError("Failed to build quiz prompt", err)
	}

	l := logger.Get()
	l.Info("Generating quiz",
		zap.String("source_kind", string(source.Kind)),
		zap.Int("duration_minutes", durationMinutes),
		zap.Int("num_mcq", numMCQ),
		zap.Int("num_free", numFree),
		zap.Int("material_length", len(material)))

	content, err := c.llm.Chat(ctx, domain.ChatRequest{
		Messages: messages,
		JSONMode: true,
	})
	if err != nil {
		return nil, domain.NewUpstreamError(err)
	}

	var raw rawQuizOutput
	if err := decodeModelJSON(content, &raw); err != nil {
		l.Warn("Model returned an unusable quiz", zap.Error(err), zap.Int("content_length", len(content)))
		return nil, domain.NewMalformedResponseError(err)
	}

	mcqs, frees := raw.toQuestions()
	questions := domain.TruncateQuestions(domain.Interleave(mcqs, frees), total)
	if len(questions) < total {
		l.Warn("Model returned fewer questions than requested",
			zap.Int("requested", total),
			zap.Int("received", len(questions)))
	}

	return domain.NewQuiz(source, durationMinutes, questions), nil
}
