package routes

import (
	"github.com/gofiber/fiber/v2"

	"pinball-backend/controllers"
	"pinball-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticated())

	// Idempotency guard, mainly for the matching endpoints
	protected.Use(middlewares.Idempotency())

	// Imports
	protected.Post("/import/bank", controllers.ImportBank)
	protected.Post("/import/contracts", controllers.ImportContracts)
	protected.Post("/import/invoices", controllers.ImportInvoices)
	protected.Get("/import/batches", controllers.ListImportBatches)

	// Bank transactions
	protected.Get("/bank-transactions", controllers.ListBankTransactions)

	// Invoices
	protected.Get("/invoices", controllers.ListInvoices)
	protected.Get("/invoices/:id", controllers.GetInvoice)
	protected.Post("/invoices/:id/recompute", controllers.RecomputeInvoice)

	// Handshakes (matching)
	protected.Post("/handshakes", controllers.CreateHandshake)
	protected.Post("/handshakes/split", controllers.SplitMatch)
	protected.Delete("/handshakes/:id", controllers.DeleteHandshake)
	protected.Get("/handshakes", controllers.ListHandshakes)

	// Shows
	protected.Get("/shows", controllers.ListShows)
	protected.Post("/shows", controllers.CreateShow)
	protected.Get("/shows/:id", controllers.GetShow)
	protected.Patch("/shows/:id", controllers.PatchShow)
	protected.Get("/shows/:id/settlement", controllers.GetShowSettlement)

	// Outgoing payments
	protected.Post("/outgoing-payments", controllers.CreateOutgoingPayment)
	protected.Get("/outgoing-payments", controllers.ListOutgoingPayments)

	// Settlements
	protected.Post("/settlements", controllers.CreateSettlement)
	protected.Get("/settlements", controllers.ListSettlements)
	protected.Put("/settlements/:id", controllers.UpdateSettlement)
	protected.Post("/settlements/:id/confirm", controllers.ConfirmSettlement)

	// Reconciliation summary
	protected.Get("/reconciliation", controllers.ReconciliationSummary)
}
