package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cvallejos/asientos-api/internal/application/asientos"
	"github.com/cvallejos/asientos-api/internal/application/auth"
	"github.com/cvallejos/asientos-api/internal/infrastructure/csvfile"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Lector     *csvfile.Lector
	ProcesarUC *asientos.ProcesarLoteUseCase
	LibroPDF   asientos.GeneradorLibroPDF
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Procesamiento de lotes (protegido)
	asientosGroup := protected.Group("/asientos")
	asientosHandler := NewAsientosHandler(deps.Lector, deps.ProcesarUC, deps.LibroPDF)
	asientosGroup.Post("/procesar", asientosHandler.Procesar)
	asientosGroup.Post("/procesar/pdf", asientosHandler.ProcesarPDF)
}
