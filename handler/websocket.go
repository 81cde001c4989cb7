package handler

import (
	"cinema_booking/model"
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var notificationPollInterval = 5 * time.Second

// NotificationSocket pushes rank notifications to a signed-in member as
// they appear. Each message is delivered once.
func NotificationSocket(c *websocket.Conn) {
	defer c.Close()

	claim, ok := c.Locals("claims").(model.TokenClaim)
	if !ok || claim.AccountId == 0 {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(notificationPollInterval)
	defer ticker.Stop()

	ctx := context.Background()
	for {
		if msg, ok := Bookings.Notification(ctx, claim.AccountId); ok {
			if err := c.WriteJSON(fiber.Map{"type": "rank_upgrade", "message": msg}); err != nil {
				log.Debug().Err(err).Uint("accountId", claim.AccountId).Msg("notification socket closed")
				return
			}
		}
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// UpgradeWebSocket only lets websocket upgrade requests through.
func UpgradeWebSocket(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
