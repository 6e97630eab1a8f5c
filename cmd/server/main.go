package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mahedy25/storefront-api/internal/cart"
	"github.com/mahedy25/storefront-api/internal/db"
	apihttp "github.com/mahedy25/storefront-api/internal/http"
	"github.com/mahedy25/storefront-api/internal/notification"
	"github.com/mahedy25/storefront-api/internal/order"
	"github.com/mahedy25/storefront-api/internal/product"
	"github.com/mahedy25/storefront-api/internal/review"
	"github.com/mahedy25/storefront-api/internal/setting"
	"github.com/mahedy25/storefront-api/pkg/config"
	"github.com/mahedy25/storefront-api/pkg/logger"
	"github.com/mahedy25/storefront-api/pkg/shutdown"
)

type indexCreator interface {
	CreateIndexes(ctx context.Context) error
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "storefront-api",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	mongoDB, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoDB.Client().Disconnect(disconnectCtx); err != nil {
			log.Error("failed to disconnect mongodb", "error", err)
		}
	}()
	log.Info("connected to mongodb", "database", cfg.MongoDBName)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	pingCancel()
	log.Info("connected to redis", "addr", cfg.RedisAddr)

	receipts := notification.NewKafkaReceiptPublisher(cfg.KafkaBrokers, cfg.ReceiptTopic)
	defer receipts.Close()

	orderRepo := order.NewMongoRepository(mongoDB)
	productRepo := product.NewMongoRepository(mongoDB)
	reviewRepo := review.NewMongoRepository(mongoDB)
	settingRepo := setting.NewMongoRepository(mongoDB)

	for name, repo := range map[string]interface{}{
		"orders":   orderRepo,
		"products": productRepo,
		"reviews":  reviewRepo,
	} {
		if ic, ok := repo.(indexCreator); ok {
			if err := ic.CreateIndexes(ctx); err != nil {
				log.Error("failed to create indexes", "collection", name, "error", err)
				os.Exit(1)
			}
		}
	}

	settings := setting.NewCache(settingRepo)
	carts := cart.NewService(cart.NewRedisStore(redisClient), settings)
	orders := order.NewService(orderRepo, settings, receipts, log)

	reviews := review.NewService(reviewRepo, productRepo, settings)

	router := apihttp.NewRouter(apihttp.RouterConfig{
		Carts:          apihttp.NewCartHandler(carts),
		Orders:         apihttp.NewOrderHandler(orders, carts, log),
		Products:       apihttp.NewProductHandler(productRepo, settings),
		Reviews:        apihttp.NewReviewHandler(reviews),
		Settings:       apihttp.NewSettingHandler(settings),
		PaymentWebhook: apihttp.NewWebhookHandler(orders, cfg.WebhookSecret, log),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", "port", cfg.HTTPPort)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
