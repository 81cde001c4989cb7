package handler

import (
	"cinema_booking/booking"
	"cinema_booking/constants"
	"cinema_booking/loyalty"
	"cinema_booking/repository"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	Repo     *repository.Repository
	Bookings *booking.Service
)

// Setup wires the handlers to their storage and booking service.
func Setup(repo *repository.Repository, bookings *booking.Service) {
	Repo = repo
	Bookings = bookings
}

// bookingError maps booking failures to a response; unknown errors are 500.
func bookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, booking.ErrShowtimeNotFound),
		errors.Is(err, booking.ErrSeatNotFound),
		errors.Is(err, booking.ErrFoodNotFound),
		errors.Is(err, booking.ErrInvoiceNotFound),
		errors.Is(err, booking.ErrPaymentNotFound),
		errors.Is(err, booking.ErrMemberNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, errors.Cause(err).Error(), err)
	case errors.Is(err, booking.ErrSeatTaken),
		errors.Is(err, booking.ErrAlreadyCancelled),
		errors.Is(err, booking.ErrInvoiceNotPending),
		errors.Is(err, loyalty.ErrRedemptionUnavailable),
		errors.Is(err, loyalty.ErrVoucherUnavailable):
		return utils.ErrorResponse(c, fiber.StatusConflict, errors.Cause(err).Error(), err)
	case errors.Is(err, booking.ErrVoucherInvalid),
		errors.Is(err, booking.ErrInsufficientScore),
		errors.Is(err, booking.ErrTooLateToCancel):
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, errors.Cause(err).Error(), err)
	case errors.Is(err, booking.ErrPointsRequireAccount):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, errors.Cause(err).Error(), err)
	case errors.Is(err, booking.ErrInvoiceNotOwned):
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_FORBIDDEN, err)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}
