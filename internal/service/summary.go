package service

import (
	"context"

	"tudman/internal/domain"
	"tudman/internal/logger"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// summaryService implements domain.Summarizer
type summaryService struct {
	llm domain.ChatClient
}

func NewSummaryService(llm domain.ChatClient) domain.Summarizer {
	return &summaryService{llm: llm}
}

// Summarize returns the model's markdown summary of transcript verbatim.
func (s *summaryService) Summarize(ctx context.Context, transcript []domain.QARecord) (string, error) {
	messages, err := buildSummaryMessages(transcript)
	if err != nil {
		return "", domain.NewInternalError("Failed to build summary prompt", err)
	}

	missed := lo.CountBy(transcript, func(r domain.QARecord) bool {
		return r.Correct != nil && !*r.Correct
	})
	logger.Get().Info("Summarizing quiz transcript",
		zap.Int("questions", len(transcript)),
		zap.Int("missed", missed))

	content, err := s.llm.Chat(ctx, domain.ChatRequest{
		Messages:    messages,
		Temperature: lo.ToPtr(summaryTemperature),
	})
	if err != nil {
		return "", domain.NewUpstreamError(err)
	}
	return content, nil
}
