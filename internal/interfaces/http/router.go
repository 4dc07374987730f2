package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Proyeccion-api/internal/application/alert"
	"github.com/jhoicas/Proyeccion-api/internal/application/auth"
	"github.com/jhoicas/Proyeccion-api/internal/application/catalog"
	"github.com/jhoicas/Proyeccion-api/internal/application/feasibility"
	"github.com/jhoicas/Proyeccion-api/internal/application/forecast"
	"github.com/jhoicas/Proyeccion-api/internal/application/intake"
	"github.com/jhoicas/Proyeccion-api/internal/application/order"
	"github.com/jhoicas/Proyeccion-api/internal/application/report"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *catalog.UseCase
	IntakeUC   *intake.UseCase
	Evaluator  *feasibility.Evaluator
	GenerateUC *forecast.GenerateUseCase
	ReportUC   *report.UseCase
	OrderSvc   *order.Service
	AlertUC    *alert.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
// ADMIN pasa todos los gates; AUDITOR solo lee.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Catálogo: lectura para todos, escritura Gerente de Planta
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	planta := RequireRole(entity.RolePlanta)
	protected.Get("/species", catalogHandler.ListSpecies)
	protected.Post("/species", planta, catalogHandler.CreateSpecies)
	protected.Delete("/species/:id", planta, catalogHandler.DeleteSpecies)
	protected.Get("/zones", catalogHandler.ListZones)
	protected.Post("/zones", planta, catalogHandler.CreateZone)
	protected.Delete("/zones/:id", planta, catalogHandler.DeleteZone)

	// Inventario: registro de biomasa y secado (Coordinador de Cultivo)
	inventoryHandler := NewInventoryHandler(deps.IntakeUC, deps.Evaluator)
	cultivo := RequireRole(entity.RoleCultivo, entity.RolePlanta)
	protected.Post("/biomass", RequireRole(entity.RoleCultivo), inventoryHandler.RegisterBiomass)
	protected.Get("/inventory/:id", inventoryHandler.GetItem)
	protected.Post("/inventory/:id/drying", cultivo, inventoryHandler.StartDrying)
	protected.Post("/inventory/:id/dry", cultivo, inventoryHandler.FinishDrying)
	protected.Get("/capacity/:species_id", inventoryHandler.Capacity)

	// Proyecciones (Gerente de Planta)
	forecastHandler := NewForecastHandler(deps.GenerateUC, deps.ReportUC)
	protected.Post("/forecasts/run", planta, forecastHandler.Run)
	protected.Get("/forecasts/report.pdf", forecastHandler.ReportPDF)

	// Pedidos (Ejecutivo Comercial)
	orderHandler := NewOrderHandler(deps.OrderSvc)
	protected.Post("/orders", RequireRole(entity.RoleComercial), orderHandler.Create)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.GetByID)
	protected.Post("/orders/:id/complete", RequireRole(entity.RoleComercial, entity.RolePlanta), orderHandler.Complete)

	// Alertas
	alertHandler := NewAlertHandler(deps.AlertUC)
	protected.Get("/alerts", alertHandler.List)
	protected.Post("/alerts/redispatch", planta, alertHandler.Redispatch)
	protected.Post("/alerts/:id/notified", planta, alertHandler.MarkNotified)
}
