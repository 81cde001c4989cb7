package handler

import (
	"cinema_booking/booking"
	"cinema_booking/config"
	"cinema_booking/constants"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func QuoteBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.QuoteInput)
	q, err := Bookings.Quote(c.UserContext(), quoteRequest(c, input))
	if err != nil {
		return bookingError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, q)
}

func CreateBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.BookingInput)
	inv, err := Bookings.Confirm(c.UserContext(), booking.ConfirmRequest{
		QuoteRequest:  quoteRequest(c, input.QuoteInput),
		PaymentMethod: input.PaymentMethod,
		Email:         input.Email,
	})
	if err != nil {
		return bookingError(c, err)
	}
	if inv.Status == constants.INVOICE_PAID {
		sendBookingEmail(c, inv.PublicCode)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, inv)
}

func GetBooking(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	inv, err := Bookings.GetInvoice(c.UserContext(), claim.AccountId, c.Params("code"))
	if err != nil {
		return bookingError(c, err)
	}
	qr, err := utils.QRCodeDataURL(inv.PublicCode, 256)
	if err != nil {
		log.Warn().Err(err).Str("code", inv.PublicCode).Msg("render invoice qr")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"invoice": inv,
		"qrCode":  qr,
	})
}

func CancelBooking(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	res, err := Bookings.Cancel(c.UserContext(), claim.AccountId, c.Params("code"))
	if err != nil {
		return bookingError(c, err)
	}
	if res.Invoice.Email != "" {
		data := utils.RefundEmailData{InvoiceCode: res.Invoice.PublicCode, RefundPercent: res.RefundPercent}
		if v := res.RefundVoucher; v != nil {
			data.VoucherCode = v.Code
			data.VoucherValue = v.Value
			if v.ExpiresAt != nil {
				data.ExpiresAt = v.ExpiresAt.Format("02/01/2006")
			}
		}
		utils.SendRefundEmail(res.Invoice.Email, data)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

// sendBookingEmail reloads the invoice so seat and movie details are present.
func sendBookingEmail(c *fiber.Ctx, code string) {
	inv, err := Repo.GetInvoiceByCode(c.UserContext(), code)
	if err != nil || inv == nil || inv.Email == "" {
		if err != nil {
			log.Warn().Err(err).Str("code", code).Msg("load invoice for email")
		}
		return
	}
	seats := make([]string, 0, len(inv.Seats))
	for _, s := range inv.Seats {
		seats = append(seats, fmt.Sprintf("%s%d", s.Seat.Row, s.Seat.Column))
	}
	utils.SendBookingConfirmationEmail(inv.Email, utils.BookingEmailData{
		InvoiceCode:   inv.PublicCode,
		MovieName:     inv.Showtime.Movie.Title,
		Showtime:      inv.Showtime.StartTime.Format("15:04 02/01/2006"),
		Seats:         strings.Join(seats, ", "),
		TotalAmount:   inv.TotalPrice,
		PaymentMethod: inv.PaymentMethod,
		AddScore:      inv.AddScore,
		DetailLink:    config.Config("APP_URL") + "/bookings/" + inv.PublicCode,
	})
}

// MarkBookingPaid lets staff settle a pending invoice paid at the counter.
func MarkBookingPaid(c *fiber.Ctx) error {
	inv, err := Bookings.MarkPaid(c.UserContext(), c.Params("code"))
	if err != nil {
		return bookingError(c, err)
	}
	sendBookingEmail(c, inv.PublicCode)
	return utils.SuccessResponse(c, fiber.StatusOK, inv)
}
