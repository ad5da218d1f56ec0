package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/focusflow/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Profile  *apiHandler.ProfileHandler
	Task     *apiHandler.TaskHandler
	Calendar *apiHandler.CalendarHandler
	Reminder *apiHandler.ReminderHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))
	r.POST("/api/v1/auth/password", authMiddleware(handlers.Auth.ChangePassword))
	r.DELETE("/api/v1/account", authMiddleware(handlers.Auth.DeleteAccount))

	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))
	r.DELETE("/api/v1/profile/avatar", authMiddleware(handlers.Profile.RemoveAvatar))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.POST("/api/v1/tasks/{id}/toggle", authMiddleware(handlers.Task.ToggleTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.GET("/api/v1/calendar", authMiddleware(handlers.Calendar.GetCalendar))

	r.POST("/api/v1/reminders/send", authMiddleware(handlers.Reminder.SendNow))

	return r
}
