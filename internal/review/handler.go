package review

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lifestylemart/storefront-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/:productId<[0-9]+>/reviews", h.listApproved)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products/:productId<[0-9]+>/reviews", h.submit)
	app.Get("/api/v1/admin/reviews", h.listPending)
	app.Post("/api/v1/admin/reviews/:id<[0-9]+>/approve", h.approve)
	app.Post("/api/v1/admin/reviews/:id<[0-9]+>/reject", h.reject)
}

func (h *Handler) listApproved(c *fiber.Ctx) error {
	productID, _ := c.ParamsInt("productId")
	reviews, err := h.service.ListApproved(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(reviews)
}

type submitRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func (h *Handler) submit(c *fiber.Ctx) error {
	p, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, _ := c.ParamsInt("productId")
	payload := new(submitRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Submit(p.UserID, productID, payload.Rating, payload.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateReview):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "You have already reviewed this product"})
		case errors.Is(err, ErrInvalidRating), errors.Is(err, ErrInvalidText):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) listPending(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	reviews, err := h.service.ListPending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(reviews)
}

func (h *Handler) approve(c *fiber.Ctx) error {
	return h.moderate(c, h.service.Approve)
}

func (h *Handler) reject(c *fiber.Ctx) error {
	return h.moderate(c, h.service.Reject)
}

func (h *Handler) moderate(c *fiber.Ctx, verdict func(int) (Review, error)) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	id, _ := c.ParamsInt("id")
	rev, err := verdict(id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
		case errors.Is(err, ErrTerminalReview):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "review has already been moderated"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(rev)
}

func requireAdmin(c *fiber.Ctx) error {
	p, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := user.Authorize(p, user.RoleAdmin); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
	}
	return nil
}
