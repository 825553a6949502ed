package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/Laaxxmm/Pomodoro/api/handler"
)

type Handlers struct {
	Task     *apiHandler.TaskHandler
	Planner  *apiHandler.PlannerHandler
	Pomodoro *apiHandler.PomodoroHandler
	Settings *apiHandler.SettingsHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Tasks
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.PUT("/api/v1/tasks/{id}/start", authMiddleware(handlers.Task.StartTask))
	r.PUT("/api/v1/tasks/{id}/complete", authMiddleware(handlers.Task.CompleteTask))

	// Daily planning
	r.GET("/api/v1/today", authMiddleware(handlers.Planner.Today))
	r.POST("/api/v1/prioritize", authMiddleware(handlers.Planner.Prioritize))
	r.POST("/api/v1/rollover", authMiddleware(handlers.Planner.Rollover))

	// Pomodoro
	r.POST("/api/v1/pomodoro/start", authMiddleware(handlers.Pomodoro.Start))
	r.POST("/api/v1/pomodoro/complete", authMiddleware(handlers.Pomodoro.Complete))
	r.GET("/api/v1/pomodoro/stats", authMiddleware(handlers.Pomodoro.Stats))

	// Settings and stats
	r.GET("/api/v1/settings", authMiddleware(handlers.Settings.Get))
	r.PUT("/api/v1/settings", authMiddleware(handlers.Settings.Update))
	r.GET("/api/v1/stats", authMiddleware(handlers.Settings.Stats))

	return r
}
