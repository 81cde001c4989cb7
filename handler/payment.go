package handler

import (
	"cinema_booking/config"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// CreatePayment starts a VNPay payment for a pending invoice.
func CreatePayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePaymentInput)
	payment, inv, err := Bookings.StartPayment(c.UserContext(), helper.AccountIdPtr(c), input.InvoiceCode)
	if err != nil {
		return bookingError(c, err)
	}

	vnpay := NewVNPay()
	paymentUrl, err := vnpay.BuildPaymentUrl(model.PaymentRequest{
		Amount:    int64(payment.Amount),
		OrderInfo: fmt.Sprintf("Payment for booking %s", inv.PublicCode),
		TxnRef:    payment.PaymentCode,
		IPAddr:    c.IP(),
	})
	if err != nil {
		return bookingError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"paymentUrl":  paymentUrl,
		"paymentCode": payment.PaymentCode,
		"invoiceCode": inv.PublicCode,
	})
}

func VNPayCallback(c *fiber.Ctx) error {
	query, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	result := NewVNPay().VerifyReturnUrl(query)
	appURL := config.Config("APP_URL")
	if !result.IsSuccess {
		return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=%s", appURL, url.QueryEscape(result.Message)))
	}

	inv, err := Bookings.CompletePayment(c.UserContext(), result.TxnRef)
	if err != nil {
		log.Error().Err(err).Str("txnRef", result.TxnRef).Msg("complete vnpay payment")
		return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=%s", appURL, url.QueryEscape(err.Error())))
	}
	sendBookingEmail(c, inv.PublicCode)
	return c.Redirect(fmt.Sprintf("%s/success?invoiceCode=%s", appURL, inv.PublicCode))
}

// VNPayIPN is the server to server confirmation; it is idempotent.
func VNPayIPN(c *fiber.Ctx) error {
	query, _ := url.ParseQuery(string(c.Body()))
	result := NewVNPay().VerifyIPN(query)
	if !result.IsSuccess {
		return c.JSON(fiber.Map{"RspCode": "97", "Message": result.Message})
	}
	if _, err := Bookings.CompletePayment(c.UserContext(), result.TxnRef); err != nil {
		log.Error().Err(err).Str("txnRef", result.TxnRef).Msg("vnpay ipn")
		return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found"})
	}
	return c.JSON(fiber.Map{"RspCode": "00", "Message": "Success"})
}
