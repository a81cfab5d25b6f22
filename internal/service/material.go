package service

import (
	"context"
	"errors"

	"tudman/internal/domain"
	"tudman/internal/logger"

	"go.uber.org/zap"
)

// materialService implements domain.MaterialAcquirer
type materialService struct {
	extractor domain.ContentExtractor
}

// NewMaterialService creates an acquirer that reads URLs through extractor.
func NewMaterialService(extractor domain.ContentExtractor) domain.MaterialAcquirer {
	return &materialService{extractor: extractor}
}

// Acquire returns a topic unchanged and the readable text of a URL.
// A page with no text yields "", which is not an error.
func (s *materialService) Acquire(ctx context.Context, source domain.Source) (string, error) {
	switch source.Kind {
	case domain.SourceKindTopic:
		return source.Value, nil
	case domain.SourceKindURL:
		text, err := s.extractor.ExtractReadableText(ctx, source.Value)
		if err != nil {
			logger.Get().Warn("Failed to acquire material from URL", zap.String("url", source.Value), zap.Error(err))
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) {
				return "", err
			}
			return "", domain.NewFetchError(source.Value, err)
		}
		logger.Get().Debug("Acquired material from URL", zap.String("url", source.Value), zap.Int("length", len(text)))
		return text, nil
	default:
		return "", domain.NewInvalidInputError("inputType must be one of url, topic")
	}
}
