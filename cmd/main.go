package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	cartapp "github.com/muhammadheryan/marketplace/application/cart"
	catalogapp "github.com/muhammadheryan/marketplace/application/catalog"
	checkoutapp "github.com/muhammadheryan/marketplace/application/checkout"
	orderapp "github.com/muhammadheryan/marketplace/application/order"
	shopapp "github.com/muhammadheryan/marketplace/application/shop"
	userapp "github.com/muhammadheryan/marketplace/application/user"
	"github.com/muhammadheryan/marketplace/cmd/config"
	redisclient "github.com/muhammadheryan/marketplace/cmd/redis"
	_ "github.com/muhammadheryan/marketplace/docs"
	cartRepo "github.com/muhammadheryan/marketplace/repository/cart"
	orderRepo "github.com/muhammadheryan/marketplace/repository/order"
	productRepo "github.com/muhammadheryan/marketplace/repository/product"
	redisRepo "github.com/muhammadheryan/marketplace/repository/redis"
	shopRepo "github.com/muhammadheryan/marketplace/repository/shop"
	txRepo "github.com/muhammadheryan/marketplace/repository/tx"
	userRepo "github.com/muhammadheryan/marketplace/repository/user"
	"github.com/muhammadheryan/marketplace/thirdparty/rabbitmq"
	"github.com/muhammadheryan/marketplace/transport"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"go.uber.org/zap"
)

// @title MARKETPLACE API
// @version 1.0
// @description Multi-tenant marketplace order placement API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Order event publisher and the notification relay consumer
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
	}
	defer publisher.Close()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
		cfg.Internal.NotificationURL, cfg.Internal.APIKey)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start order events consumer", zap.Error(err))
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	CartRepo := cartRepo.NewCartRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	ShopRepo := shopRepo.NewShopRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	CatalogApp := catalogapp.NewCatalogApp(TxRepo, ProductRepo, ShopRepo, RedisRepo)
	CartApp := cartapp.NewCartApp(CartRepo, ProductRepo)
	CheckoutApp := checkoutapp.NewCheckoutApp(TxRepo, ProductRepo, OrderRepo, CartRepo, publisher)
	OrderApp := orderapp.NewOrderApp(TxRepo, OrderRepo, ProductRepo, ShopRepo, publisher)
	ShopApp := shopapp.NewShopApp(ShopRepo)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		UserApp:     UserApp,
		CatalogApp:  CatalogApp,
		CartApp:     CartApp,
		CheckoutApp: CheckoutApp,
		OrderApp:    OrderApp,
		ShopApp:     ShopApp,
	}, cfg.Internal.APIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
