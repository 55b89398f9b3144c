package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ariel-nathan/chirp/internal/posts"
	"github.com/ariel-nathan/chirp/internal/profile"
	"github.com/ariel-nathan/chirp/internal/web"
)

type Router struct {
	PostsHandler   *posts.Handler
	ProfileHandler *profile.Handler
	WebHandler     *web.Handler

	AuthMW    fiber.Handler // requires a session
	SessionMW fiber.Handler // observes a session if present
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.PostsHandler != nil {
		app.Get("/api/posts", r.PostsHandler.GetAll)
		app.Get("/api/posts/:id", r.PostsHandler.GetByID)
		app.Get("/api/users/:id/posts", r.PostsHandler.GetByUser)

		if r.AuthMW != nil {
			app.Post("/api/posts", r.AuthMW, RateLimitWrite(), r.PostsHandler.Create)
		} else {
			app.Post("/api/posts", RateLimitWrite(), r.PostsHandler.Create)
		}
	}

	if r.ProfileHandler != nil {
		app.Get("/api/profile/:id", r.ProfileHandler.GetUser)
	}

	if r.WebHandler != nil {
		if r.SessionMW != nil {
			app.Get("/", r.SessionMW, r.WebHandler.Feed)
		} else {
			app.Get("/", r.WebHandler.Feed)
		}
		app.Get("/post/:id", r.WebHandler.Post)
		app.Get("/user/:id", r.WebHandler.User)
	}
}
