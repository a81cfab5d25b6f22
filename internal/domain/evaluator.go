package domain

import "context"

// EvaluationResult is the judgment for a single submitted answer
type EvaluationResult struct {
	Correct  bool    `json:"correct"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// QARecord is one entry of the transcript the client assembles after a quiz.
// Prompt is required but may be empty.
type QARecord struct {
	Prompt      *string      `json:"prompt" validate:"required"`
	Type        QuestionType `json:"type" validate:"required"`
	IdealAnswer *string      `json:"idealAnswer,omitempty"`
	UserAnswer  *string      `json:"userAnswer,omitempty"`
	Correct     *bool        `json:"correct,omitempty"`
	Feedback    *string      `json:"feedback,omitempty"`
}

// MaterialAcquirer turns a source descriptor into plain study material
type MaterialAcquirer interface {
	Acquire(ctx context.Context, source Source) (string, error)
}

// QuizComposer builds a quiz from material through the language model
type QuizComposer interface {
	Compose(ctx context.Context, source Source, material string, durationMinutes int) (*Quiz, error)
}

// QuizValidator enforces the canonical quiz shape
type QuizValidator interface {
	Validate(quiz *Quiz) (*Quiz, error)
}

// AnswerEvaluator grades one answer to one question
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question Question, userAnswer string) (*EvaluationResult, error)
}

// Summarizer produces a markdown study summary of a transcript
type Summarizer interface {
	Summarize(ctx context.Context, transcript []QARecord) (string, error)
}

// ContentExtractor fetches a web page and returns its readable text
type ContentExtractor interface {
	ExtractReadableText(ctx context.Context, pageURL string) (string, error)
}
