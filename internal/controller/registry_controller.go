package controller

import (
	"github.com/gofiber/fiber/v2"
)

func (lc *LeadController) ListLeadSources(c *fiber.Ctx) error {
	sources, err := lc.leads.ListLeadSources(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": sources,
	})
}

func (lc *LeadController) ListLeadStatuses(c *fiber.Ctx) error {
	statuses, err := lc.leads.ListLeadStatuses(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": statuses,
	})
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
