package validate

import (
	"cinema_booking/model"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler {
	return body[model.RegisterInput]()
}

func Login() fiber.Handler {
	return body[model.LoginInput]()
}

func RefreshToken() fiber.Handler {
	return body[model.RefreshTokenInput]()
}
