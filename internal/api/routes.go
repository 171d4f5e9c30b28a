package api

import (
	"task-api/internal/api/handlers"
	"task-api/internal/config"
	"task-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewApp builds the Fiber app with middleware and all routes mounted.
func NewApp(deps *config.Dependencies, corsOrigin string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "task-api",
	})

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigin,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	RegisterRoutes(app, handlers.NewTaskHandler(deps.Tasks, deps.Validate))
	return app
}

func RegisterRoutes(app *fiber.App, tasks *handlers.TaskHandler) {
	app.Get("/", handlers.Welcome)

	// Task
	taskRoutes := app.Group("/api/tasks")
	taskRoutes.Get("/", tasks.ListTasks)
	taskRoutes.Post("/", tasks.CreateTask)
	taskRoutes.Put("/:id", tasks.UpdateTask)
	taskRoutes.Delete("/:id", tasks.DeleteTask)
}
