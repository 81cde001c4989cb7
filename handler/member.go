package handler

import (
	"cinema_booking/constants"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func GetMyMember(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	res, err := Bookings.Member(c.UserContext(), claim.AccountId)
	if err != nil {
		return bookingError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

// GetMyNotification returns the pending rank notification once.
func GetMyNotification(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	msg, ok := Bookings.Notification(c.UserContext(), claim.AccountId)
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": msg})
}

func GetMyPointHistory(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	p, _ := c.Locals("pagination").(model.Pagination)
	rows, total, err := Bookings.History(c.UserContext(), claim.AccountId, p)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       rows,
		Limit:      p.Limit,
		Page:       p.Page,
		TotalCount: total,
	})
}

func GetMyVouchers(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	vouchers, err := Bookings.Vouchers(c.UserContext(), claim.AccountId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, vouchers)
}

// AdjustPoints is the admin endpoint for manual credits and debits. The
// outcome tells a silent skip apart from an applied change.
func AdjustPoints(c *fiber.Ctx) error {
	input := c.Locals("input").(model.AdjustPointsInput)
	outcome, err := Bookings.AdjustPoints(c.UserContext(), input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"outcome": outcome.String()})
}
