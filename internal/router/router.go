// Package router maps the API's route table onto an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/healthhub/dashboard-api/internal/handler"
)

// Register wires every route. The cache middleware is applied to the three
// read endpoints only; writes always reach the store.
func Register(e *echo.Echo, users *handler.UserHandler, records *handler.RecordHandler, cache echo.MiddlewareFunc) {
	e.GET("/", handler.Liveness)

	api := e.Group("/api")
	api.GET("/users", users.List, cache)
	api.POST("/login", users.Login)
	api.POST("/register", users.Register)
	api.PUT("/users/:userId", users.Update)

	api.GET("/weight/:userId", records.ListWeight, cache)
	api.POST("/weight", records.AddWeight)
	api.POST("/workouts", records.AddWorkout)
	api.GET("/health/:userId", records.ListHealthMetrics, cache)
	api.POST("/health", records.AddHealthMetric)
}
