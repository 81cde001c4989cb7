package handler

import (
	"cinema_booking/booking"
	"cinema_booking/constants"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/promotion"
	"cinema_booking/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetPromotions lists promotions active now.
func GetPromotions(c *fiber.Ctx) error {
	promotions, err := Repo.GetAllPromotions(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	now := time.Now()
	active := make([]model.Promotion, 0, len(promotions))
	for _, p := range promotions {
		if promotion.Compile(p).ActiveAt(now) {
			active = append(active, p)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, active)
}

// GetBestPromotion previews the booking promotion a request would receive.
func GetBestPromotion(c *fiber.Ctx) error {
	input := c.Locals("input").(model.QuoteInput)
	q, err := Bookings.Quote(c.UserContext(), quoteRequest(c, input))
	if err != nil {
		return bookingError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"promotionId":       q.PromotionID,
		"promotionTitle":    q.PromotionTitle,
		"promotionDiscount": q.PromotionDiscount,
	})
}

func quoteRequest(c *fiber.Ctx, input model.QuoteInput) booking.QuoteRequest {
	return booking.QuoteRequest{
		AccountID:   helper.AccountIdPtr(c),
		ShowtimeID:  input.ShowtimeId,
		SeatIDs:     input.SeatIds,
		Foods:       input.Foods,
		VoucherCode: input.VoucherCode,
		UseScore:    input.UseScore,
	}
}
