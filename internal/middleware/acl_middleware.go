package middleware

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"meetowner_crm/pkg/apperror"
)

// Authorize rejects requests that act for another account. userType and
// userID are the identity pair the handler parsed from the request, and
// must be checked after parsing so the comparison sees exactly what the
// service will use. Admin user types pass unchecked. A nil part is let
// through so input validation reports it.
func Authorize(c *fiber.Ctx, adminTypes []uint, userType, userID *uint) error {
	claims := Claims(c)
	if claims == nil {
		return apperror.Unauthorized("Missing bearer token")
	}
	if slices.Contains(adminTypes, claims.UserType) {
		return nil
	}
	if userType == nil || userID == nil {
		return nil
	}

	if *userType != claims.UserType || *userID != claims.UserID {
		return apperror.Forbidden("You don't have permission to act for this user")
	}
	return nil
}
