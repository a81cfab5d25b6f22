package handler

import (
	"tudman/internal/domain"
	"tudman/internal/dto"
	"tudman/internal/logger"
	"tudman/internal/middleware"
	"tudman/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{OK: true})
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Builds a Persian quiz of 2 questions per minute from a URL or a topic, alternating multiple-choice and free-response questions
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz source and duration"
// @Success 200 {object} domain.Quiz
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /generateQuiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.GenerateQuizRequestKey).(*dto.GenerateQuizRequest)
	if !ok {
		return domain.NewInternalError("generate quiz request was not validated", nil)
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), req.Source(), req.DurationMinutes)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.Error(err),
			zap.String("input_type", req.InputType),
			zap.Int("duration_minutes", req.DurationMinutes),
		)
		return err
	}

	return c.JSON(quiz)
}

// Evaluate godoc
// @Summary Evaluate an answer
// @Description Grades a multiple-choice answer locally or a free response through the language model
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.EvaluateRequest true "Question and answer"
// @Success 200 {object} domain.EvaluationResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /evaluate [post]
func (h *QuizHandler) Evaluate(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.EvaluateRequestKey).(*dto.EvaluateRequest)
	if !ok {
		return domain.NewInternalError("evaluate request was not validated", nil)
	}

	question := req.Question.ToDomain()
	result, err := h.service.EvaluateAnswer(c.UserContext(), question, *req.UserAnswer)
	if err != nil {
		logger.Get().Error("Failed to evaluate answer",
			zap.Error(err),
			zap.String("question_id", question.ID),
			zap.String("question_type", string(question.Type)),
		)
		return err
	}

	return c.JSON(result)
}

// Summary godoc
// @Summary Summarize a finished quiz
// @Description Produces a Persian markdown study summary, missed concepts first
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SummaryRequest true "Quiz transcript"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /summary [post]
func (h *QuizHandler) Summary(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.SummaryRequestKey).(*dto.SummaryRequest)
	if !ok {
		return domain.NewInternalError("summary request was not validated", nil)
	}

	summary, err := h.service.Summarize(c.UserContext(), req.QA)
	if err != nil {
		logger.Get().Error("Failed to summarize quiz", zap.Error(err), zap.Int("questions", len(req.QA)))
		return err
	}

	return c.JSON(dto.SummaryResponse{Summary: summary})
}
