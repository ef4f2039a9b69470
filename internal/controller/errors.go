package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"meetowner_crm/pkg/apperror"
)

// ErrorHandler renders every handler error as the API's error envelope.
// Storage causes are logged and never sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"status":  "error",
			"kind":    fiberKind(fe.Code),
			"message": fe.Message,
			"fields":  []string{},
		})
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Persistence("process request", err).(*apperror.Error)
	}

	switch appErr.Kind {
	case apperror.KindPersistence, apperror.KindConfiguration:
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}

	fields := appErr.Fields
	if fields == nil {
		fields = []string{}
	}
	return c.Status(apperror.HTTPStatus(appErr.Kind)).JSON(fiber.Map{
		"status":  "error",
		"kind":    appErr.Kind,
		"message": appErr.Message,
		"fields":  fields,
	})
}

func fiberKind(code int) apperror.Kind {
	switch code {
	case fiber.StatusNotFound:
		return apperror.KindNotFound
	case fiber.StatusUnauthorized:
		return apperror.KindUnauthorized
	case fiber.StatusForbidden:
		return apperror.KindForbidden
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
		return apperror.KindValidation
	default:
		return "error"
	}
}
