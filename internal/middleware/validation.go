package middleware

import (
	"tudman/internal/domain"
	"tudman/internal/dto"
	"tudman/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys under which validated request bodies are stored
const (
	GenerateQuizRequestKey = "validated_generate_quiz_request"
	EvaluateRequestKey     = "validated_evaluate_request"
	SummaryRequestKey      = "validated_summary_request"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateQuiz parses and validates the quiz generation body
func (vm *ValidationMiddleware) ValidateGenerateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuizRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		if errors := vm.validator.ValidateGenerateQuizRequest(req.InputType, req.Value, req.DurationMinutes); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(GenerateQuizRequestKey, &req)
		return c.Next()
	}
}

// ValidateEvaluate parses and validates the evaluation body
func (vm *ValidationMiddleware) ValidateEvaluate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.EvaluateRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		if errors := vm.validator.ValidateEvaluateRequest(req.Question, req.UserAnswer != nil); len(errors) > 0 {
			return errors
		}

		c.Locals(EvaluateRequestKey, &req)
		return c.Next()
	}
}

// ValidateSummary parses and validates the summary body
func (vm *ValidationMiddleware) ValidateSummary() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.SummaryRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		if errors := vm.validator.ValidateSummaryRequest(req.QA); len(errors) > 0 {
			return errors
		}

		c.Locals(SummaryRequestKey, &req)
		return c.Next()
	}
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewError(domain.ErrInvalidInput, "Invalid request body", err)
	}
	return nil
}
