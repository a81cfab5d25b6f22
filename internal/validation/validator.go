package validation

import (
	"fmt"

	"tudman/internal/domain"
	"tudman/internal/dto"
)

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 60
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the quiz generation request
func (v *Validator) ValidateGenerateQuizRequest(inputType, value string, durationMinutes int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if inputType == "" {
		errors = append(errors, domain.NewMissingFieldError("inputType"))
	} else if !domain.SourceKind(inputType).IsValid() {
		errors = append(errors, domain.NewInvalidFormatError("inputType", inputType))
	}

	if value == "" {
		errors = append(errors, domain.NewMissingFieldError("value"))
	}

	if durationMinutes < MinDurationMinutes || durationMinutes > MaxDurationMinutes {
		errors = append(errors, domain.NewOutOfRangeError("durationMinutes", durationMinutes, MinDurationMinutes, MaxDurationMinutes))
	}

	return errors
}

// ValidateEvaluateRequest validates the question and answer submitted for grading.
// id, type and prompt are required on every question; the variant fields are not.
func (v *Validator) ValidateEvaluateRequest(question *dto.QuestionRequest, userAnswerPresent bool) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if question == nil {
		errors = append(errors, domain.NewMissingFieldError("question"))
	} else {
		if question.ID == nil {
			errors = append(errors, domain.NewMissingFieldError("question.id"))
		}
		if question.Type == "" {
			errors = append(errors, domain.NewMissingFieldError("question.type"))
		} else if !domain.QuestionType(question.Type).IsValid() {
			errors = append(errors, domain.NewInvalidFormatError("question.type", question.Type))
		}
		if question.Prompt == nil {
			errors = append(errors, domain.NewMissingFieldError("question.prompt"))
		}
	}

	if !userAnswerPresent {
		errors = append(errors, domain.NewMissingFieldError("userAnswer"))
	}

	return errors
}

// ValidateSummaryRequest validates the transcript sent for summarization
func (v *Validator) ValidateSummaryRequest(qa []domain.QARecord) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if qa == nil {
		errors = append(errors, domain.NewMissingFieldError("qa"))
		return errors
	}

	for i, record := range qa {
		field := fmt.Sprintf("qa[%d]", i)
		if record.Prompt == nil {
			errors = append(errors, domain.NewMissingFieldError(field+".prompt"))
		}
		if !record.Type.IsValid() {
			errors = append(errors, domain.NewInvalidFormatError(field+".type", record.Type))
		}
	}

	return errors
}
