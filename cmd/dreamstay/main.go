package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dreamstay/internal/app/commands"
	bookingapp "dreamstay/internal/app/handlers/booking"
	destinationsapp "dreamstay/internal/app/handlers/destinations"
	inventoryapp "dreamstay/internal/app/handlers/inventory"
	propertyapp "dreamstay/internal/app/handlers/property"
	searchapp "dreamstay/internal/app/handlers/search"
	"dreamstay/internal/app/middleware"
	"dreamstay/internal/app/policies"
	"dreamstay/internal/app/queries"
	authsvc "dreamstay/internal/app/services/auth"
	"dreamstay/internal/app/uow"
	domainauth "dreamstay/internal/domain/auth"
	domainuser "dreamstay/internal/domain/user"
	"dreamstay/internal/infra/broker/kafka"
	"dreamstay/internal/infra/config"
	mongodb "dreamstay/internal/infra/db/mongo"
	ginserver "dreamstay/internal/infra/http/gin"
	"dreamstay/internal/infra/obs"
	"dreamstay/internal/infra/security"
	"dreamstay/internal/infra/storage/memory"
	"dreamstay/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.StorageMode = "memory"
		cfg.CommitTimeout = 5 * time.Second
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	cleanup := func() {}

	var (
		uowFactory uow.UoWFactory
		users      domainuser.Repository
		sessions   domainauth.SessionStore
		idStore    middleware.IdempotencyStore
		ready      = func() error { return nil }
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, cleanup, err
		}
		if err := mongodb.EnsureIndexes(ctx, client.DB); err != nil {
			return application{}, cleanup, err
		}
		uowFactory = mongodb.Factory{
			DB:            client.DB,
			PropertyRepo:  mongodb.NewPropertyRepository(client.DB),
			InventoryRepo: mongodb.NewInventoryRepository(client.DB),
			BookingRepo:   mongodb.NewBookingRepository(client.DB),
		}
		users = mongodb.NewUserRepository(client.DB)
		sessions = mongodb.NewSessionStore(client.DB)
		idStore = memory.NewIdempotencyStore()
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		prev := cleanup
		cleanup = func() {
			prev()
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Close(closeCtx)
		}
	default:
		propertyRepo := memory.NewPropertyRepository()
		inventoryRepo := memory.NewInventoryRepository()
		bookingRepo := memory.NewBookingRepository(propertyRepo)
		uowFactory = memory.Factory{
			PropertyRepo:  propertyRepo,
			InventoryRepo: inventoryRepo,
			BookingRepo:   bookingRepo,
		}
		users = memory.NewUserRepository()
		sessions = memory.NewSessionStore()
		idStore = memory.NewIdempotencyStore()
	}

	var publisher policies.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicPrefix, nil)
		if err != nil {
			logger.Warn("kafka unavailable, event fan-out disabled", "error", err)
		} else {
			publisher = producer
			prev := cleanup
			cleanup = func() {
				prev()
				_ = producer.Close()
			}
		}
	}

	var photos policies.PhotoStore
	if s3Client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger); err != nil {
		logger.Warn("s3 unavailable, photo uploads disabled", "error", err)
	} else {
		photos = s3Client
	}

	authService := &authsvc.Service{
		Users:      users,
		Sessions:   sessions,
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}

	commandBus := commands.NewInMemoryBus()
	createBooking := &bookingapp.CreateBookingHandler{UoWFactory: uowFactory, CommitTimeout: cfg.CommitTimeout}
	commands.RegisterHandler(commandBus, bookingapp.CreateBookingCommand{}.Key(), createBooking)
	commands.RegisterHandler(commandBus, inventoryapp.AddRecordCommand{}.Key(), &inventoryapp.AddRecordHandler{UoWFactory: uowFactory})
	commands.RegisterHandler(commandBus, inventoryapp.BulkCreateCommand{}.Key(), &inventoryapp.BulkCreateHandler{UoWFactory: uowFactory})
	commands.RegisterHandler(commandBus, inventoryapp.BulkUpdateCommand{}.Key(), &inventoryapp.BulkUpdateHandler{UoWFactory: uowFactory})
	commands.RegisterHandler(commandBus, propertyapp.CreatePropertyCommand{}.Key(), &propertyapp.CreatePropertyHandler{UoWFactory: uowFactory})
	commands.RegisterHandler(commandBus, propertyapp.ApprovePropertyCommand{}.Key(), &propertyapp.ApprovePropertyHandler{UoWFactory: uowFactory})
	commands.RegisterHandler(commandBus, propertyapp.AttachPhotoCommand{}.Key(), &propertyapp.AttachPhotoHandler{UoWFactory: uowFactory})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.ListGuestBookingsQuery{}.Key(), &bookingapp.ListGuestBookingsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.GetBookingQuery{}.Key(), &bookingapp.GetBookingHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, inventoryapp.GetCalendarQuery{}.Key(), &inventoryapp.GetCalendarHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, propertyapp.ListHostPropertiesQuery{}.Key(), &propertyapp.ListHostPropertiesHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, searchapp.SearchStaysQuery{}.Key(), &searchapp.SearchStaysHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, destinationsapp.TrendingQuery{}.Key(), &destinationsapp.TrendingHandler{UoWFactory: uowFactory, TTL: cfg.TrendingTTL})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.EventDispatch(publisher, logger),
		middleware.Idempotency(idStore, nil),
		middleware.Validation(),
		middleware.Transaction(uowFactory, nil),
	)

	queryBusWithMiddleware := middleware.ChainQueries(queryBus, middleware.QueryValidation())

	authMW := ginserver.AuthMiddleware{Service: authService, Logger: logger}

	handlers := ginserver.Handlers{
		Auth:          ginserver.AuthHandler{Service: authService, Logger: logger},
		Booking:       ginserver.BookingHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Me:            ginserver.MeHandler{Queries: queryBusWithMiddleware},
		Search:        ginserver.SearchHandler{Queries: queryBusWithMiddleware},
		Destinations:  ginserver.DestinationsHandler{Queries: queryBusWithMiddleware},
		HostProperty:  ginserver.PropertyHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware, Photos: photos},
		HostInventory: ginserver.InventoryHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Admin:         ginserver.AdminHandler{Commands: commandBusWithMiddleware},

		AuthMiddleware: authMW.Handle,
	}

	return application{handlers: handlers, ready: ready}, cleanup, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
