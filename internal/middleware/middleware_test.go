package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetowner_crm/pkg/apperror"
	"meetowner_crm/pkg/utils/jwt"
)

type scopeInput struct {
	UserType *uint `json:"lead_added_user_type"`
	UserID   *uint `json:"lead_added_user_id"`
}

func setupApp(signer *jwt.Signer) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperror.HTTPStatus(apperror.KindOf(err)))
		},
	})
	scoped := app.Group("/", AuthMiddleware(signer))
	scoped.Post("/leads", func(c *fiber.Ctx) error {
		in := new(scopeInput)
		if err := c.BodyParser(in); err != nil {
			return apperror.Validation("Invalid request body")
		}
		if err := Authorize(c, []uint{1}, in.UserType, in.UserID); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func TestAuthAndScope(t *testing.T) {
	signer := jwt.NewSigner("test-secret", time.Hour)
	app := setupApp(signer)

	builder, err := signer.GenerateToken(10, 2, "Skyline")
	require.NoError(t, err)
	admin, err := signer.GenerateToken(1, 1, "Admin")
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  string
		token string
		want  int
	}{
		{"no token", `{"lead_added_user_type":2,"lead_added_user_id":10}`, "", http.StatusUnauthorized},
		{"bad token", `{}`, "garbage", http.StatusUnauthorized},
		{"own scope", `{"lead_added_user_type":2,"lead_added_user_id":10}`, builder, http.StatusCreated},
		{"foreign scope", `{"lead_added_user_type":2,"lead_added_user_id":11}`, builder, http.StatusForbidden},
		{"admin bypass", `{"lead_added_user_type":2,"lead_added_user_id":11}`, admin, http.StatusCreated},
		{"scope absent", `{}`, builder, http.StatusCreated},
		{"upper case keys", `{"LEAD_ADDED_USER_TYPE":2,"LEAD_ADDED_USER_ID":11}`, builder, http.StatusForbidden},
		{"mixed case keys", `{"Lead_Added_User_Type":2,"lead_added_user_ID":11}`, builder, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
