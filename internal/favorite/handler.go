package favorite

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lifestylemart/storefront-backend/internal/product"
	"github.com/lifestylemart/storefront-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/favorites", h.list)
	app.Post("/api/v1/favorites/:productId<[0-9]+>", h.add)
	app.Delete("/api/v1/favorites/:productId<[0-9]+>", h.remove)
}

func (h *Handler) list(c *fiber.Ctx) error {
	p, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	products, err := h.service.Products(p.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) add(c *fiber.Ctx) error {
	p, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, _ := strconv.Atoi(c.Params("productId"))
	ids, err := h.service.Add(p.UserID, productID)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrAlreadyFavorite):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "already in favorites"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"favorites": ids})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	p, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, _ := strconv.Atoi(c.Params("productId"))
	ids, err := h.service.Remove(p.UserID, productID)
	if err != nil {
		if errors.Is(err, ErrNotFavorite) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "not in favorites"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"favorites": ids})
}
