package profile

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ariel-nathan/chirp/internal/domain"
)

type directory interface {
	Profile(ctx context.Context, id string) (domain.PublicProfile, error)
}

// Handler serves public profile lookups against the identity provider.
type Handler struct {
	Directory directory
}

func NewHandler(d directory) *Handler {
	return &Handler{Directory: d}
}

// GetUser handles GET /api/profile/:id.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	prof, err := h.Directory.Profile(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(prof)
}
