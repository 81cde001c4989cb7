package router

import (
	"cinema_booking/handler"
	"cinema_booking/middleware"
	"cinema_booking/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", validate.RefreshToken(), handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)

	promotions := v1.Group("/promotions")
	promotions.Get("/", handler.GetPromotions)
	promotions.Post("/best", middleware.OptionalJWT(), validate.Quote(), handler.GetBestPromotion)

	bookings := v1.Group("/bookings")
	bookings.Post("/quote", middleware.OptionalJWT(), validate.Quote(), handler.QuoteBooking)
	bookings.Post("/", middleware.OptionalJWT(), validate.CreateBooking(), handler.CreateBooking)
	bookings.Get("/:code", middleware.Protected(), handler.GetBooking)
	bookings.Post("/:code/cancel", middleware.Protected(), handler.CancelBooking)
	bookings.Post("/:code/pay", middleware.Protected(), middleware.AdminOnly(), handler.MarkBookingPaid)

	member := v1.Group("/member", middleware.Protected())
	member.Get("/me", handler.GetMyMember)
	member.Get("/notification", handler.GetMyNotification)
	member.Get("/history", validate.Pagination(), handler.GetMyPointHistory)
	member.Get("/vouchers", handler.GetMyVouchers)
	member.Post("/points", middleware.AdminOnly(), validate.AdjustPoints(), handler.AdjustPoints)

	payments := v1.Group("/payments")
	payments.Post("/", middleware.OptionalJWT(), validate.CreatePayment(), handler.CreatePayment)

	vnpay := app.Group("/vnpay")
	vnpay.Get("/return", handler.VNPayCallback)
	vnpay.Post("/ipn", handler.VNPayIPN)

	ws := app.Group("/ws", handler.UpgradeWebSocket)
	ws.Get("/notifications", middleware.Protected(), websocket.New(handler.NotificationSocket))
}
