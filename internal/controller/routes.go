package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"meetowner_crm/internal/middleware"
	"meetowner_crm/pkg/utils/jwt"
)

type Deps struct {
	Leads *LeadController
	JWT   *jwt.Signer
}

// NewApp builds the Fiber application. Extra middleware runs before the
// routes, after recover and request ids.
func NewApp(deps Deps, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	for _, h := range extra {
		app.Use(h)
	}
	app.Use(cors.New())

	setupRoutes(app, deps)
	return app
}

func setupRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", Health)

	api := app.Group("/api/v1", middleware.AuthMiddleware(deps.JWT))

	lc := deps.Leads

	// Registry
	api.Get("/lead-sources", lc.ListLeadSources)
	api.Get("/lead-statuses", lc.ListLeadStatuses)

	// Leads
	leads := api.Group("/leads")
	leads.Post("/", lc.CreateLead)
	leads.Get("/", lc.ListLeads)
	leads.Get("/booked", lc.ListBookedLeads)
	leads.Post("/:id/assign", lc.AssignLead)
	leads.Post("/:id/updates", lc.RecordUpdate)
	leads.Get("/:id/updates", lc.ListUpdates)
	leads.Post("/:id/book", lc.CompleteBooking)
}
