package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/park-seok-hoon/minishop/internal/config"
	"github.com/park-seok-hoon/minishop/internal/handlers"
	"github.com/park-seok-hoon/minishop/internal/repository/postgres"
	"github.com/park-seok-hoon/minishop/internal/service"
	"github.com/park-seok-hoon/minishop/pkg/messaging"
	"github.com/park-seok-hoon/minishop/pkg/metrics"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	db, err := initDatabase(cfg, log)
	if err != nil {
		log.Fatal("database connection error", zap.Error(err))
	}
	defer db.Close()

	store := postgres.NewStore(db)

	var publisher service.EventPublisher
	if cfg.RabbitEnabled {
		rabbitClient := messaging.NewRabbitMQClient(messaging.NewRabbitMQConfig(), log)
		if err := rabbitClient.Connect(); err != nil {
			log.Fatal("rabbitmq connection error", zap.Error(err))
		}
		defer rabbitClient.Close()
		publisher = messaging.NewPublisher(rabbitClient, log)
	}

	orderMetrics := metrics.NewOrderMetrics()

	orderService := service.NewOrderService(store, publisher, orderMetrics, log)
	itemService := service.NewItemService(store, log)
	userService := service.NewUserService(store, log)

	orderHandler := handlers.NewOrderHandler(orderService)
	itemHandler := handlers.NewItemHandler(itemService)
	userHandler := handlers.NewUserHandler(userService)

	app := setupFiberApp(log)
	setupRoutes(app, orderHandler, itemHandler, userHandler)

	// Metrics on a side listener, separate from the API port.
	go func() {
		addr := ":" + cfg.MetricsPort
		log.Info("metrics listener starting", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, metrics.Handler()); err != nil {
			log.Warn("metrics listener stopped", zap.Error(err))
		}
	}()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Warn("shutdown error", zap.Error(err))
		}
	}()

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server start error", zap.Error(err))
	}
}

func initDatabase(cfg *config.Config, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := postgres.InitSchema(context.Background(), db); err != nil {
		return nil, err
	}
	log.Info("database ready", zap.String("name", cfg.DBName))
	return db, nil
}

func setupFiberApp(log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Minishop v1.0",
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))

	return app
}

func setupRoutes(app *fiber.App, orderHandler *handlers.OrderHandler, itemHandler *handlers.ItemHandler, userHandler *handlers.UserHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", orderHandler.HealthCheck)

	orders := api.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Patch("/:id/status", orderHandler.UpdateOrderStatus)
	orders.Post("/:id/cancel", orderHandler.CancelOrder)
	orders.Put("/:id/items", orderHandler.ModifyOrder)

	items := api.Group("/items")
	items.Post("/", itemHandler.CreateItem)
	items.Get("/", itemHandler.ListItems)
	items.Get("/:id", itemHandler.GetItem)
	items.Put("/:id", itemHandler.UpdateItem)
	items.Delete("/:id", itemHandler.DeleteItem)

	users := api.Group("/users")
	users.Post("/", userHandler.CreateUser)
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	app.Use("*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		log.Error("request error", zap.Error(err))

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
}
