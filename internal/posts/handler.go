package posts

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/ariel-nathan/chirp/internal/audit"
	"github.com/ariel-nathan/chirp/internal/identity"
)

type auditWriter interface {
	Write(ctx context.Context, e audit.Entry) error
}

type Handler struct {
	Svc *Service

	// Audit is optional; audit writes are skipped when nil.
	Audit auditWriter
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// GetAll handles GET /api/posts.
func (h *Handler) GetAll(c *fiber.Ctx) error {
	feed, err := h.Svc.ListAll(userContext(c))
	if err != nil {
		return err
	}
	return c.JSON(feed)
}

// GetByID handles GET /api/posts/:id.
func (h *Handler) GetByID(c *fiber.Ctx) error {
	post, err := h.Svc.GetByID(userContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// GetByUser handles GET /api/users/:id/posts.
func (h *Handler) GetByUser(c *fiber.Ctx) error {
	feed, err := h.Svc.GetByAuthor(userContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(feed)
}

// Create handles POST /api/posts.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	callerID := identity.CallerID(c)

	id, err := h.Svc.Create(userContext(c), callerID, req.Content)
	if err != nil {
		return err
	}

	// Best-effort audit trail, never blocks the response. IP and
	// header values point into fasthttp's per-request buffers, which
	// are recycled the moment this handler returns; copy them before
	// the goroutine reads them.
	if h.Audit != nil {
		ip := utils.CopyString(c.IP())
		ua := utils.CopyString(c.Get(fiber.HeaderUserAgent))
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = h.Audit.Write(ctx, audit.Entry{
				UserID:     &callerID,
				Action:     "chirp.create",
				EntityType: "post",
				EntityID:   &id,
				IP:         &ip,
				UserAgent:  &ua,
			})
		}()
	}

	return c.Status(fiber.StatusCreated).JSON(CreatePostResponse{ID: id})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
