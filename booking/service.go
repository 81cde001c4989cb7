package booking

import (
	"cinema_booking/constants"
	"cinema_booking/loyalty"
	"cinema_booking/metrics"
	"cinema_booking/model"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Service runs bookings end to end: pricing, invoice persistence and the
// loyalty effects of payment and cancellation.
type Service struct {
	repo           Store
	notifications  loyalty.NotificationStore
	now            func() time.Time
	refundValidity time.Duration
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRefundVoucherValidity(d time.Duration) Option {
	return func(s *Service) { s.refundValidity = d }
}

func NewService(repo Store, notifications loyalty.NotificationStore, opts ...Option) *Service {
	s := &Service{
		repo:           repo,
		notifications:  notifications,
		now:            time.Now,
		refundValidity: 90 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ConfirmRequest struct {
	QuoteRequest
	PaymentMethod string
	Email         string
}

type CancelResult struct {
	Invoice       *model.Invoice `json:"invoice"`
	RefundPercent float64        `json:"refundPercent"`
	RefundVoucher *model.Voucher `json:"refundVoucher,omitempty"`
}

// Ledger returns a ledger outside any transaction.
func (s *Service) Ledger() *loyalty.Ledger {
	return s.ledger(s.repo, s.notifications)
}

func (s *Service) ledger(repo Store, notifications loyalty.NotificationStore) *loyalty.Ledger {
	return loyalty.NewLedger(repo, notifications,
		loyalty.WithClock(s.now),
		loyalty.WithRefundVoucherValidity(s.refundValidity))
}

// withTx runs fn in a transaction and releases queued rank notifications
// only after commit.
func (s *Service) withTx(ctx context.Context, fn func(tx Store, ledger *loyalty.Ledger) error) error {
	queued := deferNotifications(s.notifications)
	err := s.repo.Transaction(ctx, func(tx Store) error {
		return fn(tx, s.ledger(tx, queued))
	})
	if err != nil {
		return err
	}
	queued.flush(ctx)
	return nil
}

// Confirm re-prices the request inside a transaction and stores the
// invoice with its redeemed points and voucher taken. Cash bookings settle
// immediately; VNPay bookings stay pending until the payment completes.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (*model.Invoice, error) {
	var inv *model.Invoice
	err := s.withTx(ctx, func(tx Store, ledger *loyalty.Ledger) error {
		q, err := s.quote(ctx, tx, req.QuoteRequest)
		if err != nil {
			return err
		}
		inv = newInvoice(q, req)
		if err := tx.CreateInvoice(ctx, inv); err != nil {
			return err
		}
		metrics.InvoiceTransitions.WithLabelValues(constants.INVOICE_PENDING).Inc()
		if err := ledger.ReserveRedemption(ctx, inv, tx); err != nil {
			return err
		}
		if req.PaymentMethod == constants.PAYMENT_VNPAY {
			return nil
		}
		return s.settle(ctx, tx, ledger, inv)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("code", inv.PublicCode).Str("status", inv.Status).Float64("total", inv.TotalPrice).Msg("booking confirmed")
	return inv, nil
}

// MarkPaid settles a pending invoice. Paying a paid invoice is a no-op.
func (s *Service) MarkPaid(ctx context.Context, code string) (*model.Invoice, error) {
	var inv *model.Invoice
	err := s.withTx(ctx, func(tx Store, ledger *loyalty.Ledger) error {
		var err error
		if inv, err = tx.GetInvoiceByCode(ctx, code); err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		return s.settlePending(ctx, tx, ledger, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) settlePending(ctx context.Context, tx Store, ledger *loyalty.Ledger, inv *model.Invoice) error {
	switch inv.Status {
	case constants.INVOICE_PAID:
		return nil
	case constants.INVOICE_PENDING:
		return s.settle(ctx, tx, ledger, inv)
	}
	return ErrInvoiceNotPending
}

func (s *Service) settle(ctx context.Context, tx Store, ledger *loyalty.Ledger, inv *model.Invoice) error {
	if err := ledger.SettleInvoice(ctx, inv); err != nil {
		return err
	}
	now := s.now()
	inv.Status = constants.INVOICE_PAID
	inv.PaidAt = &now
	if err := tx.SaveInvoice(ctx, inv); err != nil {
		return err
	}
	metrics.InvoiceTransitions.WithLabelValues(constants.INVOICE_PAID).Inc()
	if inv.PromotionId != nil {
		metrics.PromotionsApplied.WithLabelValues("booking").Inc()
	}
	for _, f := range inv.Foods {
		if f.PromotionName != nil {
			metrics.PromotionsApplied.WithLabelValues("food").Inc()
		}
	}
	return nil
}

// Cancel cancels an invoice owned by accountID. Paid invoices are refunded
// as a voucher, in full two hours or more before the show and by half from
// one hour before; later cancellations are rejected.
func (s *Service) Cancel(ctx context.Context, accountID uint, code string) (*CancelResult, error) {
	result := &CancelResult{}
	err := s.withTx(ctx, func(tx Store, ledger *loyalty.Ledger) error {
		inv, err := tx.GetInvoiceByCode(ctx, code)
		if err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		if inv.AccountId == nil || *inv.AccountId != accountID {
			return ErrInvoiceNotOwned
		}
		if inv.Status == constants.INVOICE_CANCELLED {
			return ErrAlreadyCancelled
		}

		if inv.Status == constants.INVOICE_PAID {
			percent, err := refundPercent(inv.Showtime.StartTime, s.now())
			if err != nil {
				return err
			}
			refund := inv.TotalPrice * percent / 100
			voucher, err := ledger.RefundInvoice(ctx, inv, tx, refund)
			if err != nil {
				return err
			}
			result.RefundPercent = percent
			result.RefundVoucher = voucher
			inv.RefundAmount = refund
		} else if err := ledger.ReleaseRedemption(ctx, inv, tx); err != nil {
			return err
		}

		if err := s.markCancelled(ctx, tx, inv); err != nil {
			return err
		}
		result.Invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.InvoiceTransitions.WithLabelValues(constants.INVOICE_CANCELLED).Inc()
	log.Info().Str("code", code).Float64("refundPercent", result.RefundPercent).Msg("booking cancelled")
	return result, nil
}

// GetInvoice loads an invoice owned by accountID.
func (s *Service) GetInvoice(ctx context.Context, accountID uint, code string) (*model.Invoice, error) {
	inv, err := s.repo.GetInvoiceByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	if inv.AccountId == nil || *inv.AccountId != accountID {
		return nil, ErrInvoiceNotOwned
	}
	return inv, nil
}

func (s *Service) markCancelled(ctx context.Context, tx Store, inv *model.Invoice) error {
	now := s.now()
	inv.Status = constants.INVOICE_CANCELLED
	inv.CancelledAt = &now
	return tx.SaveInvoice(ctx, inv)
}

// ExpirePending cancels unpaid invoices older than ttl and gives back the
// points and vouchers they held. Each invoice expires in its own
// transaction; one that was paid meanwhile is left alone.
func (s *Service) ExpirePending(ctx context.Context, ttl time.Duration) (int64, error) {
	codes, err := s.repo.GetPendingInvoiceCodesBefore(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	var n int64
	for _, code := range codes {
		expired := false
		err := s.withTx(ctx, func(tx Store, ledger *loyalty.Ledger) error {
			inv, err := tx.GetInvoiceByCode(ctx, code)
			if err != nil || inv == nil || inv.Status != constants.INVOICE_PENDING {
				return err
			}
			if err := ledger.ReleaseRedemption(ctx, inv, tx); err != nil {
				return err
			}
			expired = true
			return s.markCancelled(ctx, tx, inv)
		})
		if err != nil {
			return n, errors.WithMessagef(err, "expire invoice %s", code)
		}
		if expired {
			n++
		}
	}
	if n > 0 {
		metrics.InvoiceTransitions.WithLabelValues(constants.INVOICE_CANCELLED).Add(float64(n))
		log.Info().Int64("count", n).Msg("expired pending invoices")
	}
	return n, nil
}

func (s *Service) ExpireVouchers(ctx context.Context) (int64, error) {
	n, err := s.repo.ExpireVouchers(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("count", n).Msg("expired vouchers")
	}
	return n, nil
}

func newInvoice(q *Quote, req ConfirmRequest) *model.Invoice {
	inv := &model.Invoice{
		PublicCode:        "INV-" + strings.ToUpper(uuid.New().String()[:8]),
		AccountId:         req.AccountID,
		ShowtimeId:        q.ShowtimeID,
		Status:            constants.INVOICE_PENDING,
		PaymentMethod:     req.PaymentMethod,
		Subtotal:          q.Price.Subtotal,
		PromotionDiscount: q.PromotionDiscount,
		RankDiscount:      q.Price.RankDiscount,
		VoucherAmount:     q.Price.VoucherAmount,
		UsedPointsValue:   q.Price.UsedPointsValue,
		TotalFoodPrice:    q.Price.TotalFoodPrice,
		TotalPrice:        q.Price.TotalPrice,
		AddScore:          q.Price.AddScore,
		VoucherId:         q.VoucherID,
		PromotionId:       q.PromotionID,
		Email:             req.Email,
	}
	if req.AccountID != nil {
		inv.UseScore = req.UseScore
	}
	if inv.PaymentMethod == "" {
		inv.PaymentMethod = constants.PAYMENT_CASH
	}
	for _, seat := range q.Seats {
		inv.Seats = append(inv.Seats, model.InvoiceSeat{
			ShowtimeId:    q.ShowtimeID,
			SeatId:        seat.SeatID,
			Price:         seat.Price,
			OriginalPrice: seat.OriginalPrice,
		})
	}
	for _, f := range q.Price.FoodDetails {
		inv.Foods = append(inv.Foods, model.InvoiceFood{
			FoodId:        f.FoodID,
			Name:          f.Name,
			Quantity:      f.Quantity,
			UnitPrice:     f.UnitPrice,
			Price:         f.Price,
			PromotionName: f.PromotionName,
		})
	}
	if q.showtime != nil {
		inv.Showtime = *q.showtime
	}
	return inv
}
