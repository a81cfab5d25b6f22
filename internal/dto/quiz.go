package dto

import (
	"tudman/internal/domain"

	"github.com/samber/lo"
)

// GenerateQuizRequest represents a quiz generation request
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	InputType       string `json:"inputType" validate:"required" example:"topic" enums:"url,topic"`
	Value           string `json:"value" validate:"required" example:"فتوسنتز"`
	DurationMinutes int    `json:"durationMinutes" validate:"required" example:"5" minimum:"1" maximum:"60"`
}

// Source returns the material source the request names
func (r GenerateQuizRequest) Source() domain.Source {
	return domain.Source{Kind: domain.SourceKind(r.InputType), Value: r.Value}
}

// QuestionRequest is a question as the client sends it back for grading.
// ID and Prompt are pointers so a missing field can be told from an empty one.
type QuestionRequest struct {
	ID          *string  `json:"id" validate:"required"`
	Type        string   `json:"type" validate:"required" enums:"mcq,free"`
	Prompt      *string  `json:"prompt" validate:"required"`
	Options     []string `json:"options,omitempty"`
	AnswerIndex *int     `json:"answerIndex,omitempty"`
	IdealAnswer string   `json:"idealAnswer,omitempty"`
}

// ToDomain converts the request into a domain question. An MCQ without an
// answer index is treated as having index 0.
func (q QuestionRequest) ToDomain() domain.Question {
	if domain.QuestionType(q.Type) == domain.QuestionTypeMCQ {
		answerIndex := 0
		if q.AnswerIndex != nil {
			answerIndex = *q.AnswerIndex
		}
		return domain.NewMCQQuestion(lo.FromPtr(q.ID), lo.FromPtr(q.Prompt), q.Options, answerIndex)
	}
	return domain.NewFreeQuestion(lo.FromPtr(q.ID), lo.FromPtr(q.Prompt), q.IdealAnswer)
}

// EvaluateRequest represents an answer submitted for grading
// @Description Request body for evaluating an answer
type EvaluateRequest struct {
	Question   *QuestionRequest `json:"question" validate:"required"`
	UserAnswer *string          `json:"userAnswer" validate:"required" example:"2"`
}

// SummaryRequest carries the transcript of a finished quiz
// @Description Request body for a study summary
type SummaryRequest struct {
	QA []domain.QARecord `json:"qa" validate:"required"`
}

// SummaryResponse represents a generated study summary
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// HealthResponse represents the liveness probe response
type HealthResponse struct {
	OK bool `json:"ok" example:"true"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
