package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	handlers "github.com/pandiarajan-src/task-tracker-api/pkg/handlers/http"
	"github.com/pandiarajan-src/task-tracker-api/pkg/middleware"
)

var ErrIncompleteHandlerTransport = errors.New("incomplete handler transport")

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	ht := r.handlerTransport
	if ht.CreateTaskHandler == nil || ht.RegisterHandler == nil {
		return ErrIncompleteHandlerTransport
	}

	router.Use(r.middlewareTransport.PanicRecoverMiddleware.Middleware())
	router.Use(r.middlewareTransport.RequestLoggerMiddleware.Middleware())
	router.Use(r.middlewareTransport.CORSMiddleware.Middleware())

	router.Get("/", ht.GetRootHandler.Handle)
	router.Get("/version", ht.GetVersionHandler.Handle)

	authn := r.middlewareTransport.AuthMiddleware.Middleware()
	limiter := r.middlewareTransport.RateLimiterMiddleware.Middleware()

	v1 := router.Group("/api/v1")
	{
		// The limiter keys on the authenticated user when one is known,
		// so authentication must run first on protected routes.
		auth := v1.Group("/auth")
		{
			auth.Post("/register", limiter, ht.RegisterHandler.Handle)
			auth.Post("/login", limiter, ht.LoginHandler.Handle)
			auth.Post("/refresh", limiter, ht.RefreshTokenHandler.Handle)
			auth.Get("/me", authn, limiter, ht.GetMeHandler.Handle)
		}

		tasks := v1.Group("/tasks", authn, limiter)
		{
			tasks.Post("", ht.CreateTaskHandler.Handle)
			tasks.Get("", ht.ListTasksHandler.Handle)
			tasks.Get("/:task_id", ht.GetTaskHandler.Handle)
			tasks.Put("/:task_id", ht.UpdateTaskHandler.Handle)
			tasks.Delete("/:task_id", ht.DeleteTaskHandler.Handle)
		}
	}

	return nil
}
