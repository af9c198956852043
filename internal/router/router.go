package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/techgit41/Advanced-Todo-App/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Todo   *apiHandler.TodoHandler
	Health *apiHandler.HealthHandler
	WS     *apiHandler.WSHandler
}

// New wires the REST surface. Registration, login, health and the websocket
// endpoint are public; the websocket handler verifies its own token before
// upgrading, everything else goes through the auth middleware.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/api/health", handlers.Health.Check)

	r.POST("/api/auth/register", handlers.Auth.Register)
	r.POST("/api/auth/login", handlers.Auth.Login)
	r.GET("/api/auth/profile", authMiddleware(handlers.Auth.Profile))
	r.PUT("/api/auth/change-password", authMiddleware(handlers.Auth.ChangePassword))

	r.GET("/api/todos", authMiddleware(handlers.Todo.List))
	r.GET("/api/todos/stats", authMiddleware(handlers.Todo.Stats))
	r.POST("/api/todos", authMiddleware(handlers.Todo.Create))
	r.PUT("/api/todos/{id}", authMiddleware(handlers.Todo.Update))
	r.DELETE("/api/todos/{id}", authMiddleware(handlers.Todo.Delete))

	r.GET("/api/ws", handlers.WS.Live)

	return r
}
