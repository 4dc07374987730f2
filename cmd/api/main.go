// @title                       Proyección de Capacidad API
// @version                     1.0
// @description                 Proyección de capacidad de biomasa seca y factibilidad de pedidos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/Proyeccion-api/docs"
	"github.com/jhoicas/Proyeccion-api/internal/application/alert"
	"github.com/jhoicas/Proyeccion-api/internal/application/auth"
	"github.com/jhoicas/Proyeccion-api/internal/application/catalog"
	"github.com/jhoicas/Proyeccion-api/internal/application/feasibility"
	"github.com/jhoicas/Proyeccion-api/internal/application/forecast"
	"github.com/jhoicas/Proyeccion-api/internal/application/intake"
	"github.com/jhoicas/Proyeccion-api/internal/application/ledger"
	"github.com/jhoicas/Proyeccion-api/internal/application/order"
	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/jhoicas/Proyeccion-api/internal/application/report"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Proyeccion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/weather"
	httpRouter "github.com/jhoicas/Proyeccion-api/internal/interfaces/http"
	"github.com/jhoicas/Proyeccion-api/pkg/config"
	"github.com/jhoicas/Proyeccion-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida, se usa UTC")
		loc = time.UTC
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	collectors := metrics.New()

	// Notificaciones: Redis + SMTP, opcional
	var notifier ports.AlertNotifier = ports.NopNotifier{}
	var dispatcher *notify.Dispatcher
	var workerPool *notify.Pool
	if cfg.Notify.RedisURL != "" {
		rdb, err := notify.NewRedis(ctx, cfg.Notify.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func(rdb *redis.Client) { _ = rdb.Close() }(rdb)

		dispatcher = notify.NewDispatcher(rdb)
		notifier = dispatcher
		mailer := notify.NewMailer(notify.MailerConfig{
			Host:     cfg.Notify.SMTPHost,
			Port:     cfg.Notify.SMTPPort,
			User:     cfg.Notify.SMTPUser,
			Password: cfg.Notify.SMTPPassword,
			From:     cfg.Notify.SMTPFrom,
		})
		processor := notify.NewProcessor(mailer, st.alerts, cfg.Alert.RecipientEmail, log.Component("notify"))
		workerPool = notify.NewPool(rdb, processor, cfg.Notify.Workers, log.Component("notify"))
		workerPool.Start(ctx)
	} else {
		log.Info().Msg("REDIS_URL vacío: alertas sin notificación por correo")
	}

	// Clima: opcional, nunca bloquea la proyección
	var weatherProvider ports.WeatherProvider
	var weatherClient *weather.Client
	weatherTimeout := time.Duration(cfg.Weather.TimeoutMS) * time.Millisecond
	if cfg.Weather.Enabled() {
		weatherClient = weather.NewClient(weather.Config{
			BaseURL: cfg.Weather.BaseURL,
			APIKey:  cfg.Weather.APIKey,
			Lat:     cfg.Weather.Lat,
			Lon:     cfg.Weather.Lon,
			Timeout: weatherTimeout,
		}, weather.NewCircuitBreaker(weather.DefaultBreakerConfig()))
		weatherProvider = weatherClient
	}

	// Casos de uso
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		if _, err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
	}

	aggregator := feasibility.NewCapacityAggregator(st.species, st.items, st.forecasts)
	evaluator := feasibility.NewEvaluator(aggregator, loc)
	reservationLedger := ledger.NewReservationLedger(st.runner, st.species, cfg.Alert.RecipientID, log.Component("ledger"))
	orderSvc := order.NewService(
		evaluator, reservationLedger, st.runner,
		st.orders, st.reservations,
		notifier, collectors, cfg.Order.MaxAttempts, log.Component("order"),
	)

	forecaster := forecast.NewHistoricalForecaster(st.forecasts, cfg.Forecast.WindowDays, cfg.Forecast.Optimism)
	generateUC := forecast.NewGenerateUseCase(forecast.GenerateDeps{
		SpeciesRepo:  st.species,
		ItemRepo:     st.items,
		ForecastRepo: st.forecasts,
		AlertRepo:    st.alerts,
		WeatherRepo:  st.weather,
		Forecaster:   forecaster,
		Weather:      forecast.NewWeatherModifier(weatherProvider, weatherTimeout, collectors, log.Component("weather")),
		Notifier:     notifier,
		Metrics:      collectors,
		Logger:       log.Component("forecast"),
	}, cfg.Alert.RecipientID, cfg.Forecast.FallbackUtilization)

	reportUC := report.NewUseCase(st.species, st.forecasts, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Proyección de Capacidad API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		health := fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.StoreDriver}
		if weatherClient != nil {
			health["weather_circuit"] = weatherClient.BreakerState().String()
		}
		if dispatcher != nil {
			if n, err := dispatcher.QueueLength(c.Context()); err == nil {
				health["alert_queue"] = n
			} else {
				health["alert_queue"] = "unavailable"
			}
		}
		return c.JSON(health)
	})
	app.Get("/metrics", adaptor.HTTPHandler(collectors.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalog.NewUseCase(st.species, st.zones),
		IntakeUC:   intake.NewUseCase(st.runner, st.species, st.zones, st.items, log.Component("intake")),
		Evaluator:  evaluator,
		GenerateUC: generateUC,
		ReportUC:   reportUC,
		OrderSvc:   orderSvc,
		AlertUC:    alert.NewUseCase(st.alerts, notifier, log.Component("alert")),
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()
	if workerPool != nil {
		workerPool.Wait()
	}

	log.Info().Msg("aplicación detenida")
}
