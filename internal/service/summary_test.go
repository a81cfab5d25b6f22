package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tudman/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestSummaryService_Summarize(t *testing.T) {
	ctx := context.Background()
	transcript := []domain.QARecord{
		{Prompt: strPtr("پایتخت ایران؟"), Type: domain.QuestionTypeMCQ, UserAnswer: strPtr("1"), Correct: boolPtr(false), Feedback: strPtr("نادرست")},
		{Prompt: strPtr("فتوسنتز چیست؟"), Type: domain.QuestionTypeFree, IdealAnswer: strPtr("تبدیل نور"), UserAnswer: strPtr("نمی‌دانم")},
	}

	t.Run("Returns the model text verbatim", func(t *testing.T) {
		mockLLM := new(MockChatClient)
		var captured domain.ChatRequest
		summary := "## مفاهیم از دست رفته\n- پایتخت ایران تهران است\n"
		mockLLM.On("Chat", ctx, mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.ChatRequest)
		}).Return(summary, nil).Once()

		got, err := NewSummaryService(mockLLM).Summarize(ctx, transcript)
		require.NoError(t, err)
		assert.Equal(t, summary, got)

		assert.False(t, captured.JSONMode)
		require.NotNil(t, captured.Temperature)
		assert.Equal(t, 0.2, *captured.Temperature)
		require.Len(t, captured.Messages, 2)
		assert.Equal(t, summarySystemPrompt, captured.Messages[0].Content)

		var prompt struct {
			QA []map[string]interface{} `json:"qa"`
		}
		require.NoError(t, json.Unmarshal([]byte(captured.Messages[1].Content), &prompt))
		require.Len(t, prompt.QA, 2)
		assert.Equal(t, false, prompt.QA[0]["correct"])
		assert.NotContains(t, prompt.QA[0], "idealAnswer", "absent optional fields are omitted")
		assert.Equal(t, "تبدیل نور", prompt.QA[1]["idealAnswer"])
	})

	t.Run("Empty transcript", func(t *testing.T) {
		mockLLM := new(MockChatClient)
		mockLLM.On("Chat", ctx, mock.MatchedBy(func(req domain.ChatRequest) bool {
			return req.Messages[1].Content == `{"qa":[]}`
		})).Return("", nil).Once()

		got, err := NewSummaryService(mockLLM).Summarize(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		mockLLM.AssertExpectations(t)
	})

	t.Run("Upstream failure", func(t *testing.T) {
		mockLLM := new(MockChatClient)
		mockLLM.On("Chat", ctx, mock.Anything).Return("", errors.New("503")).Once()

		_, err := NewSummaryService(mockLLM).Summarize(ctx, transcript)
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.ErrUpstream, domainErr.Code)
	})
}
