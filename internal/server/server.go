package server

import (
	"trivia-api/internal/config"
	"trivia-api/internal/handler"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

const bodyLimit = 1 * 1024 * 1024

// New builds the fiber app serving the trivia API. The swagger route is only
// registered when withDocs is set.
func New(cfg config.ServerConfig, triviaService service.TriviaService, withDocs bool) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		BodyLimit:             bodyLimit,
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(middleware.CORS())
	app.Use(middleware.AccessControlHeaders())

	if withDocs {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	registerRoutes(app, triviaService)
	return app
}

func registerRoutes(app *fiber.App, triviaService service.TriviaService) {
	categoryHandler := handler.NewCategoryHandler(triviaService)
	questionHandler := handler.NewQuestionHandler(triviaService)
	quizHandler := handler.NewQuizHandler(triviaService)
	validationMiddleware := middleware.NewValidationMiddleware()

	// Category routes
	app.Get("/categories", categoryHandler.GetCategories)
	app.Get("/categories/:id<int>/questions", categoryHandler.GetCategoryQuestions)

	// Question routes
	app.Get("/questions", validationMiddleware.ParsePage(), questionHandler.GetQuestions)
	app.Get("/questions/:id<int>", validationMiddleware.ParsePage(), questionHandler.GetCategoryQuestionsPage)
	app.Post("/questions", questionHandler.PostQuestions)
	app.Post("/questions/search", questionHandler.SearchQuestions)
	app.Delete("/questions/:id<int>", questionHandler.DeleteQuestion)

	// Quiz routes
	app.Post("/quizzes", quizHandler.PlayQuiz)
}
