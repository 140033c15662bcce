package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/cvallejos/asientos-api/internal/application/asientos"
	"github.com/cvallejos/asientos-api/internal/application/auth"
	"github.com/cvallejos/asientos-api/internal/domain/contable"
	"github.com/cvallejos/asientos-api/internal/domain/repository"
	"github.com/cvallejos/asientos-api/internal/infrastructure/crypto"
	"github.com/cvallejos/asientos-api/internal/infrastructure/csvfile"
	infrapdf "github.com/cvallejos/asientos-api/internal/infrastructure/pdf"
	"github.com/cvallejos/asientos-api/internal/infrastructure/postgres"
	httpRouter "github.com/cvallejos/asientos-api/internal/interfaces/http"
	"github.com/cvallejos/asientos-api/pkg/config"
	"github.com/cvallejos/asientos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	indice, err := decimal.NewFromString(cfg.Pipeline.IndiceMensual)
	if err != nil {
		log.Fatal().Err(err).Str("valor", cfg.Pipeline.IndiceMensual).Msg("índice mensual inválido")
	}
	tolerancia, err := decimal.NewFromString(cfg.Pipeline.Tolerancia)
	if err != nil {
		log.Fatal().Err(err).Str("valor", cfg.Pipeline.Tolerancia).Msg("tolerancia inválida")
	}

	cifrador, err := crypto.NewCifradorCUIT(cfg.Pipeline.ClaveCUIT)
	if err != nil {
		log.Fatal().Err(err).Msg("cifrador CUIT")
	}

	// La traza de auditoría en PostgreSQL es opcional: sin DB configurada el
	// pipeline funciona igual, solo que no persiste.
	var auditoriaRepo repository.AuditoriaRepository
	if cfg.DB.Habilitada() {
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		auditoriaRepo = postgres.NewAuditoriaRepository(pool)
		log.Info().Msg("auditoría en PostgreSQL habilitada")
	} else {
		log.Warn().Msg("auditoría en PostgreSQL desactivada (sin DATABASE_URL ni DB_HOST)")
	}

	procesarUC, err := asientos.NewProcesarLoteUseCase(asientos.Config{
		IndiceMensual: indice,
		Alicuotas:     contable.TablaAlicuotasRG4115(),
		Tolerancia:    tolerancia,
		Trabajadores:  cfg.Pipeline.Trabajadores,
	}, cifrador, auditoriaRepo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("caso de uso de procesamiento")
	}

	authUC, err := auth.NewAuthUseCase(cfg.Operador, cfg.JWT)
	if err != nil {
		log.Fatal().Err(err).Msg("caso de uso de auth")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 * 1024 * 1024, // exports mensuales grandes
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Lector:     csvfile.NewLector(cfg.Pipeline.MesesRT54),
		ProcesarUC: procesarUC,
		LibroPDF:   infrapdf.NewMarotoLibroGenerator(),
		AuthUC:     authUC,
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

	log.Info().Msg("aplicación detenida")
}
