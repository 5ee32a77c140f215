package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/config"
	"bookstore/controllers"
	"bookstore/database"
	"bookstore/mailer"
	"bookstore/middleware"
	"bookstore/payment"
	"bookstore/queue"
	"bookstore/repository"
	"bookstore/routes"
	"bookstore/services/auth"
	"bookstore/services/bookrequest"
	"bookstore/services/catalog"
	"bookstore/services/checkout"
	"bookstore/services/invoice"
	"bookstore/services/order"
	"bookstore/services/sales"
	"bookstore/services/shelf"
	"bookstore/utils/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("config")
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	client, db, err := database.ConnectMongo(bootCtx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	if err := database.EnsureIndexes(bootCtx, db); err != nil {
		log.Warn().Err(err).Msg("ensure indexes failed")
	}

	var books repository.BookRepository = repository.NewBookRepository(db)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = database.ConnectRedis(bootCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
			rdb = nil
		} else {
			books = repository.NewCachedBookRepository(books, rdb, cfg.CatalogTTL, log)
		}
	}
	cancel()

	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)
	blacklist := repository.NewTokenBlacklist(db)

	tokens := token.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.Currency, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	sender := mailer.NewSMTPSender(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword, cfg.StoreName)

	invoiceSvc := invoice.New(users, orders, sender, cfg.StoreName)
	jobs := newInvoiceQueue(cfg, log)

	checkoutSvc := checkout.New(checkout.Deps{
		Gateway:  gateway,
		Users:    users,
		Books:    books,
		Orders:   orders,
		Sessions: repository.NewCheckoutSessionRepository(db),
		Tx:       database.NewMongoTx(client),
		Invoices: jobs,
		Log:      log,
	})

	if err := controllers.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("register validators")
	}

	ping := func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
	h := routes.Handlers{
		Auth:         controllers.NewAuthController(auth.New(users, blacklist, tokens), log),
		Books:        controllers.NewBookController(catalog.New(books), log),
		Cart:         controllers.NewCartController(shelf.New(users, books), log),
		Orders:       controllers.NewOrderController(checkoutSvc, order.New(orders), invoiceSvc, log),
		Sales:        controllers.NewSalesController(sales.New(orders), log),
		BookRequests: controllers.NewBookRequestController(bookrequest.New(repository.NewBookRequestRepository(db)), log),
		Health:       controllers.NewHealthController(ping, log),
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log), middleware.PrometheusMiddleware())
	_ = r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r, h, middleware.AuthMiddleware(tokens, blacklist, log))

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := jobs.Consume(ctx, invoiceSvc.Handle); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("invoice worker stopped")
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := jobs.Close(); err != nil {
		log.Error().Err(err).Msg("queue close")
	}
	<-workerDone
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Env == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "bookstore").Logger()
}

// newInvoiceQueue uses RabbitMQ when configured and falls back to an
// in-process queue otherwise.
func newInvoiceQueue(cfg *config.Config, log zerolog.Logger) queue.Queue {
	policy := queue.RetryPolicy{MaxRetries: cfg.InvoiceMaxRetries, Permanent: invoice.IsPermanent}
	if cfg.RabbitMQURL != "" {
		q, err := queue.NewRabbitMQ(cfg.RabbitMQURL, cfg.InvoiceQueue, policy, log)
		if err == nil {
			return q
		}
		log.Warn().Err(err).Msg("rabbitmq unavailable, using in-process invoice queue")
	}
	return queue.NewLocalQueue(256, policy, 2*time.Second, log)
}
