package validate

import (
	"cinema_booking/model"

	"github.com/gofiber/fiber/v2"
)

func Quote() fiber.Handler {
	return body[model.QuoteInput]()
}

func CreateBooking() fiber.Handler {
	return body[model.BookingInput]()
}

func AdjustPoints() fiber.Handler {
	return body[model.AdjustPointsInput]()
}

func CreatePayment() fiber.Handler {
	return body[model.CreatePaymentInput]()
}
