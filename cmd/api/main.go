package main

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"meetowner_crm/internal/controller"
	"meetowner_crm/internal/model"
	"meetowner_crm/internal/service"
	"meetowner_crm/pkg/config"
	"meetowner_crm/pkg/cron"
	"meetowner_crm/pkg/database"
	"meetowner_crm/pkg/email"
	"meetowner_crm/pkg/seed"
	"meetowner_crm/pkg/utils/jwt"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	if err := database.MigrateDatabase(db, model.CoreModels()...); err != nil {
		log.Warnf("Migration warning: %v", err)
	}

	if cfg.Database.Seed {
		if err := seed.SeedLeadReference(db); err != nil {
			log.Fatalf("Could not seed lead reference data: %v", err)
		}
	}

	mailer, err := email.FromConfig(cfg.Mail)
	if err != nil {
		log.Fatalf("Could not initialize email service: %v", err)
	}
	if mailer == nil {
		log.Warn("RESEND_API_KEY not set, emails disabled")
	}

	loc := cfg.Leads.Location()
	leads := service.NewLeadService(db, service.Options{
		Location:    loc,
		PhoneRegion: cfg.Leads.PhoneRegion,
	})

	scheduler, err := cron.InitFollowUpDigestCron(cfg.Leads.DigestSpec, loc, db, mailer)
	if err != nil {
		log.Fatalf("Could not initialize follow-up digest cron: %v", err)
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	app := controller.NewApp(controller.Deps{
		Leads: controller.NewLeadController(leads, mailer, cfg.JWT.AdminUserTypes),
		JWT:   jwt.NewSigner(cfg.JWT.Secret, 0),
	}, logger.New(logger.Config{
		Format: "${time} [${locals:requestid}] ${status} - ${latency} ${method} ${path}\n",
	}))

	log.Infof("Server is running on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
