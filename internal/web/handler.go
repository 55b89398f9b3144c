package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ariel-nathan/chirp/internal/domain"
	"github.com/ariel-nathan/chirp/internal/identity"
	"github.com/ariel-nathan/chirp/internal/metrics"
)

const viewTTL = 60 * time.Second

type postReader interface {
	ListAll(ctx context.Context) ([]domain.PostWithAuthor, error)
	GetByID(ctx context.Context, postID string) (domain.PostWithAuthor, error)
	GetByAuthor(ctx context.Context, authorID string) ([]domain.PostWithAuthor, error)
}

type profileDirectory interface {
	Profile(ctx context.Context, id string) (domain.PublicProfile, error)
}

// Handler serves the page view models behind /, /post/:id and /user/:id.
type Handler struct {
	Posts     postReader
	Directory profileDirectory
	Cache     Cache
}

func NewHandler(posts postReader, directory profileDirectory, cache Cache) *Handler {
	return &Handler{Posts: posts, Directory: directory, Cache: cache}
}

// Feed handles GET /. A failed feed fetch becomes an in-page error
// state rather than a failed request; the page shell always renders.
func (h *Handler) Feed(c *fiber.Ctx) error {
	view := FeedView{}
	if identity.CallerID(c) != "" {
		view.SignedIn = true
		view.Composer = &ComposerView{MaxLength: domain.MaxContentLength}
	}

	feed, err := h.Posts.ListAll(userContext(c))
	switch {
	case err != nil:
		slog.Error("feed fetch failed", "error", err)
		view.Feed = FeedSection{State: StateError, Posts: []domain.PostWithAuthor{}}
	case len(feed) == 0:
		view.Feed = FeedSection{State: StateEmpty, Posts: []domain.PostWithAuthor{}}
	default:
		view.Feed = FeedSection{State: StateOK, Posts: feed}
	}

	return c.JSON(view)
}

// Post handles GET /post/:id.
func (h *Handler) Post(c *fiber.Ctx) error {
	id := c.Params("id")

	if b, ok := h.cached(c, "view:post:"+id, "post"); ok {
		return sendJSON(c, b)
	}

	full, err := h.Posts.GetByID(userContext(c), id)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(PostView{State: StateNotFound})
	}
	if err != nil {
		return err
	}

	return h.render(c, "view:post:"+id, PostView{State: StateOK, Post: &full})
}

// User handles GET /user/:id. "User exists but has no posts" and "user
// does not exist" are distinct outcomes: the profile lookup decides the
// latter.
func (h *Handler) User(c *fiber.Ctx) error {
	id := c.Params("id")

	if b, ok := h.cached(c, "view:user:"+id, "user"); ok {
		return sendJSON(c, b)
	}

	ctx := userContext(c)

	prof, err := h.Directory.Profile(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(UserView{State: StateUserNotFound, Posts: []domain.PostWithAuthor{}})
	}
	if err != nil {
		return err
	}

	feed, err := h.Posts.GetByAuthor(ctx, id)
	if err != nil {
		return err
	}

	view := UserView{State: StateOK, Profile: &prof, Posts: feed}
	if len(feed) == 0 {
		view.State = StateNoPosts
	}

	return h.render(c, "view:user:"+id, view)
}

func (h *Handler) cached(c *fiber.Ctx, key, route string) ([]byte, bool) {
	if h.Cache == nil {
		return nil, false
	}

	b, err := h.Cache.Get(userContext(c), key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("view cache read failed", "key", key, "error", err)
		}
		metrics.ViewCacheMisses.WithLabelValues(route).Inc()
		return nil, false
	}

	metrics.ViewCacheHits.WithLabelValues(route).Inc()
	return b, true
}

func (h *Handler) render(c *fiber.Ctx, key string, view interface{}) error {
	b, err := json.Marshal(view)
	if err != nil {
		return err
	}

	if h.Cache != nil {
		if err := h.Cache.Set(userContext(c), key, b, viewTTL); err != nil {
			slog.Warn("view cache write failed", "key", key, "error", err)
		}
	}

	return sendJSON(c, b)
}

func sendJSON(c *fiber.Ctx, b []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(b)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
