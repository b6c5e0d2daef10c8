package routes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "oficina_quotes/docs" // generated by swag init
	"oficina_quotes/internal/adapter/http/handlers"
	"oficina_quotes/internal/adapter/persistence/fixture"
	"oficina_quotes/internal/adapter/persistence/memory"
	"oficina_quotes/internal/adapter/persistence/repository"
	"oficina_quotes/internal/infrastructure/cache"
	"oficina_quotes/internal/infrastructure/database"
	"oficina_quotes/internal/infrastructure/logger"
	"oficina_quotes/internal/infrastructure/messaging"
	"oficina_quotes/internal/usecase"
	"oficina_quotes/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.New()

const defaultPort = "8080"

const shutdownTimeout = 10 * time.Second

// Run will start the server and block until SIGINT or SIGTERM.
func Run() {
	log := logger.New()
	ctx := context.Background()

	setMiddlewares(log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	uc, closeFn, err := buildQuoteUseCase(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to wire the quote engine")
	}
	getRoutes(uc)

	srv := &http.Server{
		Addr:    ":" + getenvDefault("PORT", defaultPort),
		Handler: router,
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to startup the application")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http server shutdown")
	}
	uc.WaitNotifications()
	closeFn()
	log.Info("server stopped")
}

func getRoutes(uc usecase.IQuoteUseCase) {
	quoteHandler := handlers.NewQuoteHandler(uc)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, quoteHandler)
}

// buildQuoteUseCase selects storage, lock and notification backends from the
// environment. The returned func releases broker and cache connections.
func buildQuoteUseCase(ctx context.Context, log *logrus.Logger) (*usecase.QuoteUseCase, func(), error) {
	deps := usecase.QuoteDependencies{Logger: log}
	var closers []func()

	switch getenvDefault("STORAGE_DRIVER", "dynamodb") {
	case "memory":
		store := memory.NewStore()
		if path := os.Getenv("SEED_FILE"); path != "" {
			fx, err := fixture.Load(path)
			if err != nil {
				return nil, nil, err
			}
			if err := fx.WriteTo(ctx, store.Seeder()); err != nil {
				return nil, nil, err
			}
			log.WithField("file", path).Info("memory store seeded")
		}
		deps.Quotes = store.Quotes()
		deps.Parts = store.Parts()
		deps.ServiceOrders = store.ServiceOrders()
		deps.Warranties = store.Warranties()
	default:
		ddb, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return nil, nil, err
		}
		deps.Quotes = repository.NewQuoteDynamoRepository(ddb)
		deps.Parts = repository.NewPartDynamoRepository(ddb)
		deps.ServiceOrders = repository.NewServiceOrderDynamoRepository(ddb)
		deps.Warranties = repository.NewWarrantyDynamoRepository(ddb)
	}

	rdb, err := cache.ConnectRedis(ctx, log)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, order lock disabled")
	} else if rdb != nil {
		deps.Locker = cache.NewRedisOrderLocker(rdb)
		closers = append(closers, func() { _ = rdb.Close() })
	}

	deps.Notifications = notificationSink(log, &closers)

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return usecase.NewQuoteUseCase(deps), closeAll, nil
}

func notificationSink(log *logrus.Logger, closers *[]func()) interfaces.INotificationSink {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		return messaging.NewLogNotificationSink(log)
	}
	pub, err := messaging.NewRabbitPublisher(url, getenvDefault("AMQP_EXCHANGE", messaging.DefaultExchange), log)
	if err != nil {
		log.WithError(err).Warn("rabbitmq unavailable, notifications are logged only")
		return messaging.NewLogNotificationSink(log)
	}
	*closers = append(*closers, pub.Close)
	return messaging.NewRabbitNotificationSink(pub)
}

func setMiddlewares(log logrus.FieldLogger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithField("panic", recovered).Error("Recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
