package server

import (
	"time"

	"tudman/internal/config"
	"tudman/internal/handler"
	"tudman/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIPrefix is the path prefix the web client calls the API under.
const APIPrefix = "/api"

// New builds the Fiber app with every route registered at the root and
// again under APIPrefix.
func New(cfg config.ServerConfig, quizHandler *handler.QuizHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  time.Minute,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	validation := middleware.NewValidationMiddleware()
	registerRoutes(app, quizHandler, validation)
	registerRoutes(app.Group(APIPrefix), quizHandler, validation)

	return app
}

func registerRoutes(r fiber.Router, h *handler.QuizHandler, v *middleware.ValidationMiddleware) {
	r.Get("/health", h.Health)
	r.Post("/generateQuiz", v.ValidateGenerateQuiz(), h.GenerateQuiz)
	r.Post("/evaluate", v.ValidateEvaluate(), h.Evaluate)
	r.Post("/summary", v.ValidateSummary(), h.Summary)
}
