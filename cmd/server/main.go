package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"

	"opportunity-report-service/internal/config"
	"opportunity-report-service/internal/controller"
	"opportunity-report-service/internal/logger"
	"opportunity-report-service/internal/middleware"
	"opportunity-report-service/internal/rabbit"
	"opportunity-report-service/internal/repository"
	"opportunity-report-service/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.Log)

	// Los defer de run (cancel, conn.Close) corren antes de salir.
	if err := run(cfg, log); err != nil {
		log.Error("Servidor detenido", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if !cfg.GinDebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Warn("Zona horaria inválida, se usa UTC",
			slog.String("timezone", cfg.TimeZone),
			slog.String("error", err.Error()))
		loc = time.UTC
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store en memoria
	store := repository.NewReportStore()

	topology := rabbit.Topology{
		IncidentsExchange: cfg.IncidentsExchange,
		IncidentsQueue:    cfg.IncidentsQueue,
		EventsExchange:    cfg.EventsExchange,
	}

	// Conexión a RabbitMQ (opcional)
	var notifier service.Notifier = service.NopNotifier{}
	var consumerCh *amqp091.Channel
	if cfg.RabbitURL != "" {
		conn, err := amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			return fmt.Errorf("conectando a RabbitMQ: %w", err)
		}
		defer conn.Close()

		pubCh, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("creando canal de publicación: %w", err)
		}
		publisher, err := rabbit.SetupPublisher(pubCh, topology)
		if err != nil {
			return fmt.Errorf("configurando publisher: %w", err)
		}
		notifier = publisher

		consumerCh, err = conn.Channel()
		if err != nil {
			return fmt.Errorf("creando canal de consumo: %w", err)
		}
	}

	// Servicio y handlers
	reportService := service.NewReportService(store, notifier)
	ctrl := controller.NewReportController(reportService, loc)

	if consumerCh != nil {
		if err := rabbit.SetupConsumers(ctx, consumerCh, reportService, topology); err != nil {
			return fmt.Errorf("configurando consumer: %w", err)
		}
	}

	// Router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	corsConfig := cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", middleware.ConfirmHeader},
		ExposeHeaders: []string{"Content-Type", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	ctrl.AddRoutes(r.Group("/"))

	// Ejecutar servidor
	log.Info("Opportunity Report Service ejecutándose", slog.String("port", cfg.Port))
	return r.Run(":" + cfg.Port)
}
