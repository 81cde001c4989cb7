package middleware

import (
	"cinema_booking/constants"
	"cinema_booking/helper"
	"cinema_booking/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

func bearerToken(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

// Protected rejects requests without a valid access token.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHORIZED, errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHORIZED, err)
		}
		claim, ok := helper.ClaimsFromToken(jwtToken)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHORIZED, errors.New("invalid claims"))
		}

		c.Locals("claims", claim)
		return c.Next()
	}
}

// OptionalJWT reads the token when present and otherwise lets the request
// through as a guest.
func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}
		jwtToken, err := helper.ParseToken(token)
		if err != nil {
			return c.Next()
		}
		if claim, ok := helper.ClaimsFromToken(jwtToken); ok {
			c.Locals("claims", claim)
		}
		return c.Next()
	}
}

// AdminOnly must run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, ok := helper.GetInfoAccountFromToken(c)
		if !ok || claim.Role != constants.ROLE_ADMIN {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_FORBIDDEN, errors.New("not admin"))
		}
		return c.Next()
	}
}
