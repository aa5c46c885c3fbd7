package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/adapter/cache"
	"github.com/seu-repo/sigep-parking/internal/adapter/external/payment"
	"github.com/seu-repo/sigep-parking/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/sigep-parking/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/sigep-parking/internal/adapter/queue"
	"github.com/seu-repo/sigep-parking/internal/adapter/storage/postgres"
	"github.com/seu-repo/sigep-parking/internal/adapter/vault"
	wsAdapter "github.com/seu-repo/sigep-parking/internal/adapter/websocket"
	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/observability/telemetry"
	"github.com/seu-repo/sigep-parking/internal/ports"
	"github.com/seu-repo/sigep-parking/internal/service/auth"
	"github.com/seu-repo/sigep-parking/internal/service/catalog"
	"github.com/seu-repo/sigep-parking/internal/service/customer"
	"github.com/seu-repo/sigep-parking/internal/service/email"
	"github.com/seu-repo/sigep-parking/internal/service/lease"
	"github.com/seu-repo/sigep-parking/internal/service/notifier"
	"github.com/seu-repo/sigep-parking/internal/service/parking"
	"github.com/seu-repo/sigep-parking/internal/service/site"
	"github.com/seu-repo/sigep-parking/internal/service/ticket"
	"github.com/seu-repo/sigep-parking/pkg/config"
)

const (
	serviceName    = "sigep-parking"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting SIGEP Parqueaderos",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Resolve secrets from Vault when enabled
	if cfg.Vault.Enabled {
		if err := resolveSecrets(cfg, logger); err != nil {
			logger.Fatal("Failed to resolve secrets", zap.Error(err))
		}
	}

	// 4. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 5. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 6. Initialize Cache (Redis, local fallback for dev)
	var appCache ports.Cache
	if cfg.Redis.URL != "" {
		appCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	} else {
		logger.Warn("Redis not configured, using in-process cache")
		appCache = cache.NewLocalCache(5*time.Minute, logger)
	}
	defer appCache.Close()

	// 7. Initialize Message Queue
	var messageQueue queue.MessageQueue
	switch cfg.Queue.Driver {
	case "rabbitmq":
		messageQueue, err = queue.NewRabbitMQQueue(cfg.Queue.RabbitMQ.URL, logger)
	default:
		messageQueue, err = queue.NewNATSQueue(cfg.Queue.NATS.URL, logger)
	}
	if err != nil {
		logger.Fatal("Failed to connect to message queue",
			zap.String("driver", cfg.Queue.Driver), zap.Error(err))
	}
	defer messageQueue.Close()

	// 8. Initialize Repositories
	vehicleRepo := postgres.NewVehicleRepository(db, logger)
	vehicleTypeRepo := postgres.NewVehicleTypeRepository(db, logger)
	sessionRepo := postgres.NewSessionRepository(db, logger)
	leaseRepo := postgres.NewLeaseRepository(db, logger)
	customerRepo := postgres.NewCustomerRepository(db, logger)
	userRepo := postgres.NewUserRepository(db, logger)
	siteRepo := postgres.NewSiteRepository(db, logger)
	moduleRepo := postgres.NewModuleRepository(db, logger)
	lotRepo := postgres.NewParkingLotRepository(db, logger)
	rateRepo := postgres.NewRateRepository(db, logger)
	rateTypeRepo := postgres.NewRateTypeRepository(db, logger)
	methodRepo := postgres.NewPaymentMethodRepository(db, logger)
	periodicityRepo := postgres.NewPeriodicityRepository(db, logger)

	// 9. Initialize External Adapters
	var gateway ports.PaymentGateway
	if cfg.Payment.Stripe.SecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.Payment.Stripe.SecretKey, logger)
	}

	mailer, err := email.NewService(&email.Config{
		Provider:       cfg.Email.Provider,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Email.SMTPUseTLS,
		BaseURL:        cfg.Email.BaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	// 10. Initialize Services (Business Logic Layer)
	authService := auth.NewService(userRepo, appCache, cfg.JWT.Secret, logger)
	parkingService := parking.NewService(
		vehicleRepo, sessionRepo, leaseRepo, moduleRepo,
		rateRepo, rateTypeRepo, vehicleTypeRepo, methodRepo,
		gateway, messageQueue, logger,
	)
	leaseService := lease.NewService(
		leaseRepo, vehicleRepo, rateRepo, methodRepo, periodicityRepo,
		messageQueue, logger,
	)
	customerService := customer.NewService(customerRepo, vehicleRepo, logger)
	catalogService := catalog.NewService(
		rateRepo, rateTypeRepo, vehicleTypeRepo, methodRepo, periodicityRepo, logger,
	)
	siteService := site.NewService(siteRepo, moduleRepo, userRepo, logger)
	ticketService := ticket.NewService(cfg.Lot.ID, cfg.Region.Timezone, cfg.Region.Currency, lotRepo, vehicleRepo, rateRepo, rateTypeRepo, logger)

	// 11. Lease expiry notifier
	expiryNotifier := notifier.NewService(leaseRepo, vehicleRepo, customerRepo, mailer, logger)
	if cfg.Notifier.WarnBeforeDays > 0 {
		expiryNotifier.WarnBefore = time.Duration(cfg.Notifier.WarnBeforeDays) * 24 * time.Hour
	}
	if cfg.Notifier.Interval > 0 {
		expiryNotifier.Interval = cfg.Notifier.Interval
	}
	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()
	if cfg.Notifier.Enabled {
		go expiryNotifier.Run(notifierCtx)
	}

	// 12. WebSocket Hub for per-site occupancy updates
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()
	subscribeOccupancy(messageQueue, wsHub, logger)

	// 13. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(logger))
	}
	if cfg.RateLimit.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.Max,
			Expiration: cfg.RateLimit.Expiration,
		}))
	}

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(503).SendString("Database not ready")
		}
		if err := appCache.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	registerRoutes(app, cfg, logger,
		authService, parkingService, ticketService,
		leaseService, customerService, catalogService, siteService,
	)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/ocupacion", websocket.New(func(c *websocket.Conn) {
		wsHub.AddClient(c, c.Query("sede"))
	}))

	// 14. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 15. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopNotifier()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// resolveSecrets overwrites config secrets with their Vault values. Missing
// paths fall back to whatever the config file or environment provided.
func resolveSecrets(cfg *config.Config, logger *zap.Logger) error {
	sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
	if err != nil {
		return err
	}

	if dsn, err := sm.GetDatabaseCredentials(); err == nil {
		cfg.Database.URL = dsn
	} else {
		logger.Warn("Vault: database credentials not found", zap.Error(err))
	}
	if secret, err := sm.GetJWTSecret(); err == nil {
		cfg.JWT.Secret = secret
	} else {
		logger.Warn("Vault: jwt secret not found", zap.Error(err))
	}
	if key, err := sm.GetStripeAPIKey(); err == nil {
		cfg.Payment.Stripe.SecretKey = key
	}
	if key, err := sm.GetSendGridAPIKey(); err == nil {
		cfg.Email.SendGridAPIKey = key
	}
	return nil
}

// subscribeOccupancy relays entry and exit events from the queue to the
// websocket hub, keyed by site so dashboards only see their own lot.
func subscribeOccupancy(mq queue.MessageQueue, hub *wsAdapter.Hub, logger *zap.Logger) {
	relay := func(data []byte) error {
		var event struct {
			SiteID string `json:"site_id"`
		}
		if err := json.Unmarshal(data, &event); err != nil {
			logger.Warn("occupancy event with invalid payload", zap.Error(err))
			return nil
		}
		if event.SiteID != "" {
			hub.BroadcastToSite(event.SiteID, data)
		}
		return nil
	}

	for _, subject := range []string{queue.SubjectParkingEntered, queue.SubjectParkingExited} {
		if err := mq.Subscribe(subject, relay); err != nil {
			logger.Error("Failed to subscribe", zap.String("subject", subject), zap.Error(err))
		}
	}
}

func registerRoutes(
	app *fiber.App,
	cfg *config.Config,
	logger *zap.Logger,
	authService ports.AuthService,
	parkingService ports.ParkingService,
	ticketService ports.TicketService,
	leaseService ports.LeaseService,
	customerService ports.CustomerService,
	catalogService *catalog.Service,
	siteService *site.Service,
) {
	v1 := app.Group("/api/v1")

	// Auth routes (public)
	authHandler := handlers.NewAuthHandler(authService, logger)
	v1.Post("/auth/login", authHandler.Login)
	v1.Post("/auth/register", authHandler.Register)
	v1.Post("/auth/refresh", authHandler.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))

	staff := []domain.UserRole{domain.UserRoleOwner, domain.UserRoleAdmin}
	manage := middleware.RequireRoles(staff...)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Put("/usuario/activar-desactivar/:documento", manage, authHandler.ToggleActive)
	protected.Put("/usuario/:documento/rol", manage, authHandler.SetRole)

	// Parking operations: any authenticated role, operators included
	parkingHandler := handlers.NewParkingHandler(parkingService, ticketService, logger)
	protected.Get("/vehiculo/buscar/:placa", parkingHandler.SearchVehicle)
	protected.Put("/vehiculo/:placa", parkingHandler.EditVehicle)
	protected.Post("/parqueo/ingresar", parkingHandler.Enter)
	protected.Post("/parqueo/vehiculo/retirar", parkingHandler.Exit)
	protected.Get("/parqueo/:placa/cotizar", parkingHandler.QuoteSession)
	protected.Get("/sede/:sede_id/parqueos-activos", parkingHandler.ActiveSessions)
	protected.Get("/generar_ticket/:placa", parkingHandler.GenerateTicket)

	// Leases
	leaseHandler := handlers.NewLeaseHandler(leaseService, logger)
	protected.Post("/cliente/vehiculo/arrendamiento", leaseHandler.Create)
	protected.Put("/cliente/vehiculo/arrendamiento/:id", leaseHandler.Update)
	protected.Delete("/cliente/vehiculo/arrendamiento/:id", manage, leaseHandler.Delete)
	protected.Get("/cliente/vehiculo/:vehiculo_id/arrendamientos", leaseHandler.ListByVehicle)
	protected.Put("/cliente/vehiculo/arrendamiento/:id/cambiar-estado-pausa", leaseHandler.TogglePause)
	protected.Put("/cliente/vehiculo/arrendamiento/:id/reanudar", leaseHandler.Resume)

	// Customers
	customerHandler := handlers.NewCustomerHandler(customerService, logger)
	protected.Post("/cliente", customerHandler.Create)
	protected.Put("/cliente/:documento", customerHandler.Update)
	protected.Delete("/cliente/:documento", manage, customerHandler.Delete)
	protected.Get("/clientes", customerHandler.List)
	protected.Put("/cliente/activar-desactivar/:documento", customerHandler.ToggleActive)
	protected.Get("/vehiculo/:placa/cliente", customerHandler.FindByVehiclePlate)

	// Catalogs: owner and admin only
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	protected.Get("/tarifas", catalogHandler.ListRates)
	protected.Post("/tarifa", manage, catalogHandler.CreateRate)
	protected.Put("/tarifa/:id", manage, catalogHandler.UpdateRate)
	protected.Delete("/tarifa/:id", manage, catalogHandler.DeleteRate)
	protected.Get("/tipos-tarifa", catalogHandler.ListRateTypes)
	protected.Post("/tipo-tarifa", manage, catalogHandler.CreateRateType)
	protected.Put("/tipo-tarifa/:id", manage, catalogHandler.UpdateRateType)
	protected.Delete("/tipo-tarifa/:id", manage, catalogHandler.DeleteRateType)
	protected.Get("/tipos-vehiculo", catalogHandler.ListVehicleTypes)
	protected.Post("/tipo-vehiculo", manage, catalogHandler.CreateVehicleType)
	protected.Get("/metodos-pago", catalogHandler.ListPaymentMethods)
	protected.Post("/metodo-pago", manage, catalogHandler.CreatePaymentMethod)
	protected.Put("/metodo-pago/:id", manage, catalogHandler.UpdatePaymentMethod)
	protected.Delete("/metodo-pago/:id", manage, catalogHandler.DeletePaymentMethod)
	protected.Get("/periodicidades", catalogHandler.ListPeriodicities)
	protected.Post("/periodicidad", manage, catalogHandler.CreatePeriodicity)

	// Sites and modules: owner and admin only
	siteHandler := handlers.NewSiteHandler(siteService, logger)
	protected.Post("/sede", manage, siteHandler.CreateSite)
	protected.Put("/sede/:id", manage, siteHandler.UpdateSite)
	protected.Delete("/sede/:id", manage, siteHandler.DeleteSite)
	protected.Get("/sedes", siteHandler.ListSites)
	protected.Post("/modulo", manage, siteHandler.CreateModule)
	protected.Put("/modulo/:id", manage, siteHandler.UpdateModule)
	protected.Get("/sede/:sede_id/modulos", siteHandler.ListModules)
	protected.Post("/sede/:sede_id/asignar-usuario", manage, siteHandler.AssignUser)
	protected.Get("/usuario/:documento/sedes", manage, siteHandler.Assignments)
}
