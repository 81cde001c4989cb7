package main

import (
	"cinema_booking/booking"
	"cinema_booking/config"
	"cinema_booking/database"
	"cinema_booking/handler"
	"cinema_booking/helper"
	"cinema_booking/loyalty"
	"cinema_booking/repository"
	"cinema_booking/router"
	"cinema_booking/utils"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func notificationStore() loyalty.NotificationStore {
	if config.Get("NOTIFICATION_STORE", "memory") != "redis" {
		return loyalty.NewMemoryNotificationStore()
	}
	client := redis.NewClient(&redis.Options{Addr: config.Get("REDIS_ADDR", "localhost:6379")})
	log.Info().Str("addr", client.Options().Addr).Msg("rank notifications stored in redis")
	return loyalty.NewRedisNotificationStore(client, config.Duration("NOTIFICATION_TTL", 30*24*time.Hour))
}

func main() {
	utils.SetupLogger(config.Get("APP_ENV", "production"), config.Get("LOG_LEVEL", "info"))

	if err := database.ConnectDB(); err != nil {
		log.Fatal().Err(err).Msg("database")
	}

	repo := repository.New(database.DB)
	bookings := booking.NewService(booking.FromRepository(repo), notificationStore())
	handler.Setup(repo, bookings)

	if err := helper.StartVoucherScheduler(bookings); err != nil {
		log.Fatal().Err(err).Msg("voucher scheduler")
	}
	if err := helper.StartInvoiceScheduler(bookings, config.Duration("PENDING_INVOICE_TTL", 15*time.Minute)); err != nil {
		log.Fatal().Err(err).Msg("invoice scheduler")
	}
	defer helper.StopSchedulers()

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.Get("CORS_ORIGINS", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))
	router.SetupRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	if err := app.Listen(":" + config.Get("APP_PORT", "8002")); err != nil {
		log.Error().Err(err).Msg("listen")
	}
}
