package order

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lifestylemart/storefront-backend/internal/cart"
	"github.com/lifestylemart/storefront-backend/internal/user"
)

// AddressBook resolves a saved address into shipping text, scoped to its
// owner.
type AddressBook interface {
	Resolve(userID, addressID int) (string, error)
}

type Handler struct {
	service *Service

	// Addresses is optional; when set, checkout accepts a saved address ID
	// in place of free-form shipping text.
	Addresses AddressBook
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.checkout)
	app.Get("/api/v1/orders", h.listOwn)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.get)
	app.Post("/api/v1/orders/:id<[0-9]+>/rating", h.rate)

	app.Get("/api/v1/admin/orders", h.listRecent)
	app.Patch("/api/v1/admin/orders/:id<[0-9]+>/status", h.setStatus)
	app.Patch("/api/v1/admin/orders/:id<[0-9]+>/tracking", h.setTracking)
	app.Get("/api/v1/admin/dashboard", h.dashboard)
}

type checkoutRequest struct {
	PaymentMethod   string `json:"paymentMethod"`
	GiftCardCode    string `json:"giftCardCode"`
	AddressID       int    `json:"addressId"`
	ShippingAddress string `json:"shippingAddress"`
	BillingAddress  string `json:"billingAddress"`
	Notes           string `json:"notes"`
	IsGift          bool   `json:"isGift"`
	GiftMessage     string `json:"giftMessage"`
	GiftWrap        bool   `json:"giftWrap"`
	DeliveryType    string `json:"deliveryType"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	p, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.AddressID > 0 && h.Addresses != nil {
		resolved, err := h.Addresses.Resolve(p.UserID, payload.AddressID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown address"})
		}
		payload.ShippingAddress = resolved
	}

	created, err := h.service.Checkout(c.Context(), cart.SessionID(c), Draft{
		UserID:          p.UserID,
		PaymentMethod:   payload.PaymentMethod,
		GiftCardCode:    payload.GiftCardCode,
		ShippingAddress: payload.ShippingAddress,
		BillingAddress:  payload.BillingAddress,
		Notes:           payload.Notes,
		IsGift:          payload.IsGift,
		GiftMessage:     payload.GiftMessage,
		GiftWrap:        payload.GiftWrap,
		DeliveryType:    payload.DeliveryType,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Your cart is empty"})
		case errors.Is(err, ErrNoValidItems):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "No valid products in cart"})
		case errors.Is(err, ErrStockConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Stock changed during checkout, please try again"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order " + created.OrderNumber + " placed successfully",
		"order":   created,
	})
}

func (h *Handler) listOwn(c *fiber.Ctx) error {
	p, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(c.Context(), p.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) get(c *fiber.Ctx) error {
	p, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, _ := c.ParamsInt("id")
	ord, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	// owners see their own orders; admins see everything
	if ord.UserID != p.UserID && user.Authorize(p, user.RoleAdmin) != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}
	return c.JSON(ord)
}

type ratingRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func (h *Handler) rate(c *fiber.Ctx) error {
	p, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, _ := c.ParamsInt("id")
	payload := new(ratingRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.RateDelivery(c.Context(), id, p.UserID, payload.Rating, payload.Review)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrNotDelivered):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "order has not been delivered yet"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) listRecent(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	orders, err := h.service.ListRecent(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) setStatus(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	id, _ := c.ParamsInt("id")
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.SetStatus(c.Context(), id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "invalid status transition"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

type trackingRequest struct {
	TrackingNumber    string     `json:"trackingNumber"`
	CourierName       string     `json:"courierName"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

func (h *Handler) setTracking(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	id, _ := c.ParamsInt("id")
	payload := new(trackingRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.SetTracking(c.Context(), id, Tracking{
		TrackingNumber:    payload.TrackingNumber,
		CourierName:       payload.CourierName,
		EstimatedDelivery: payload.EstimatedDelivery,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ord)
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	recent, err := h.service.ListRecent(c.Context(), 10)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"stats": stats, "recentOrders": recent})
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
