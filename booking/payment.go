package booking

import (
	"cinema_booking/constants"
	"cinema_booking/loyalty"
	"cinema_booking/model"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrPaymentNotFound = errors.New("payment not found")

// StartPayment records a pending online payment for an unpaid invoice.
func (s *Service) StartPayment(ctx context.Context, accountID *uint, invoiceCode string) (*model.Payment, *model.Invoice, error) {
	var (
		payment *model.Payment
		inv     *model.Invoice
	)
	err := s.repo.Transaction(ctx, func(tx Store) error {
		var err error
		if inv, err = tx.GetInvoiceByCode(ctx, invoiceCode); err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		if inv.AccountId != nil && (accountID == nil || *inv.AccountId != *accountID) {
			return ErrInvoiceNotOwned
		}
		if inv.Status != constants.INVOICE_PENDING {
			return ErrInvoiceNotPending
		}
		payment = &model.Payment{
			InvoiceId:   inv.ID,
			Amount:      inv.TotalPrice,
			PaymentCode: fmt.Sprintf("PAY_%s_%s", s.now().Format("20060102"), strings.ToUpper(uuid.New().String()[:8])),
			Status:      constants.INVOICE_PENDING,
			Method:      constants.PAYMENT_VNPAY,
		}
		return tx.CreatePayment(ctx, payment)
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, inv, nil
}

// CompletePayment marks the payment and its invoice paid. Repeated gateway
// callbacks for the same payment are no-ops.
func (s *Service) CompletePayment(ctx context.Context, paymentCode string) (*model.Invoice, error) {
	var inv *model.Invoice
	err := s.withTx(ctx, func(tx Store, ledger *loyalty.Ledger) error {
		payment, err := tx.GetPaymentByCode(ctx, paymentCode)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrPaymentNotFound
		}
		if inv, err = tx.GetInvoiceById(ctx, payment.InvoiceId); err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		if payment.Status == constants.INVOICE_PAID {
			return nil
		}
		if err := tx.UpdatePaymentStatus(ctx, payment.ID, constants.INVOICE_PAID); err != nil {
			return err
		}
		return s.settlePending(ctx, tx, ledger, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}
