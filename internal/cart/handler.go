package cart

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lifestylemart/storefront-backend/internal/product"
)

// SessionCookie names the cookie carrying the anonymous cart session ID.
const SessionCookie = "cart_session"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Cart routes are public: a cart exists before the shopper signs in.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.view)
	app.Post("/api/v1/cart", h.add)
	app.Put("/api/v1/cart", h.update)
	app.Delete("/api/v1/cart/:productId<[0-9]+>", h.remove)
}

type mutateRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// SessionID returns the cart session from the request cookie, minting one
// when absent.
func SessionID(c *fiber.Ctx) string {
	if sid := c.Cookies(SessionCookie); sid != "" {
		return sid
	}
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sid
}

func (h *Handler) view(c *fiber.Ctx) error {
	view, err := h.service.Totals(c.Context(), SessionID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(view)
}

func (h *Handler) add(c *fiber.Ctx) error {
	payload := new(mutateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	sum, err := h.service.Add(c.Context(), SessionID(c), payload.ProductID, payload.Quantity)
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product added to cart", "cart": sum})
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(mutateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	sum, err := h.service.Update(c.Context(), SessionID(c), payload.ProductID, payload.Quantity)
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(fiber.Map{"cart": sum})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	productID, _ := c.ParamsInt("productId")
	sum, err := h.service.Remove(c.Context(), SessionID(c), productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"cart": sum})
}

func mutationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case errors.Is(err, product.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Not enough stock available"})
	case errors.Is(err, ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
