package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lifestylemart/storefront-backend/internal/address"
	"github.com/lifestylemart/storefront-backend/internal/banner"
	"github.com/lifestylemart/storefront-backend/internal/cart"
	"github.com/lifestylemart/storefront-backend/internal/category"
	"github.com/lifestylemart/storefront-backend/internal/config"
	"github.com/lifestylemart/storefront-backend/internal/database"
	"github.com/lifestylemart/storefront-backend/internal/favorite"
	"github.com/lifestylemart/storefront-backend/internal/order"
	"github.com/lifestylemart/storefront-backend/internal/product"
	"github.com/lifestylemart/storefront-backend/internal/review"
	"github.com/lifestylemart/storefront-backend/internal/user"
)

// main wires dependencies and starts the HTTP server. Routes registered
// before the JWT middleware are public; everything after requires a token.
func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// schema is applied once at startup, never lazily per request
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))

	cartService := cart.NewService(cart.NewRedisRepository(redisClient, cfg.Redis.CartTTL), productService)
	cartHandler := cart.NewHandler(cartService)

	addressService := address.NewService(address.NewPostgresRepository(db))
	addressHandler := address.NewHandler(addressService)

	orderService := order.NewService(order.NewPostgresRepository(db), cartService)
	orderHandler := order.NewHandler(orderService)
	orderHandler.Addresses = addressService

	reviewHandler := review.NewHandler(review.NewService(review.NewPostgresRepository(db)))

	favoriteHandler := favorite.NewHandler(favorite.NewService(favorite.NewPostgresRepository(db), productService))
	bannerHandler := banner.NewHandler(banner.NewService(banner.NewPostgresRepository(db)))

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	userHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	bannerHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)
	bannerHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
