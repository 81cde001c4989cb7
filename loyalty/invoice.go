package loyalty

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type VoucherRepository interface {
	GetVoucherById(ctx context.Context, id uint) (*model.Voucher, error)
	UpdateVoucher(ctx context.Context, voucher *model.Voucher) error
	CreateVoucher(ctx context.Context, voucher *model.Voucher) error
}

var (
	// ErrRedemptionUnavailable means the member cannot cover the points an invoice redeems.
	ErrRedemptionUnavailable = errors.New("not enough points to redeem")
	// ErrVoucherUnavailable means the invoice voucher is missing or already used.
	ErrVoucherUnavailable = errors.New("voucher missing or already used")
)

// ReserveRedemption takes the points and the voucher an invoice redeems
// when it is created. Nothing is taken when either part fails.
func (l *Ledger) ReserveRedemption(ctx context.Context, inv *model.Invoice, vouchers VoucherRepository) error {
	if inv.AccountId == nil {
		return nil
	}
	accountID := *inv.AccountId

	voucher, err := l.usableVoucher(ctx, inv.VoucherId, vouchers)
	if err != nil {
		return err
	}
	if inv.UseScore > 0 {
		outcome, err := l.deduct(ctx, accountID, inv.UseScore, false, constants.POINT_REASON_REDEMPTION)
		if err != nil {
			return err
		}
		if outcome != Applied {
			return errors.Wrapf(ErrRedemptionUnavailable, "account %d: %s", accountID, outcome)
		}
	}
	if voucher == nil {
		return nil
	}
	voucher.IsUsed = true
	return errors.Wrapf(vouchers.UpdateVoucher(ctx, voucher), "update voucher %d", voucher.ID)
}

// ReleaseRedemption gives back what ReserveRedemption took: redeemed
// points are credited again and the voucher becomes usable.
func (l *Ledger) ReleaseRedemption(ctx context.Context, inv *model.Invoice, vouchers VoucherRepository) error {
	if inv.AccountId == nil {
		return nil
	}
	if _, err := l.add(ctx, *inv.AccountId, inv.UseScore, constants.POINT_REASON_REFUND, false); err != nil {
		return err
	}
	return l.releaseVoucher(ctx, inv.VoucherId, vouchers)
}

// SettleInvoice credits the points a paid invoice earns. Redemption was
// already taken by ReserveRedemption. Guest invoices carry no loyalty effect.
func (l *Ledger) SettleInvoice(ctx context.Context, inv *model.Invoice) error {
	if inv.AccountId == nil {
		return nil
	}
	_, err := l.add(ctx, *inv.AccountId, inv.AddScore, constants.POINT_REASON_BOOKING, false)
	return err
}

// RefundInvoice reverses a paid invoice and mints a refund voucher worth
// refundValue when it is positive. Redeemed points are restored before
// earned points are removed.
func (l *Ledger) RefundInvoice(ctx context.Context, inv *model.Invoice, vouchers VoucherRepository, refundValue float64) (*model.Voucher, error) {
	if inv.AccountId == nil {
		return nil, nil
	}
	accountID := *inv.AccountId

	if err := l.ReleaseRedemption(ctx, inv, vouchers); err != nil {
		return nil, err
	}
	if _, err := l.deduct(ctx, accountID, inv.AddScore, false, constants.POINT_REASON_CLAWBACK); err != nil {
		return nil, err
	}
	if refundValue <= 0 {
		return nil, nil
	}

	expires := l.now().Add(l.refundValidity)
	invoiceID := inv.ID
	refund := &model.Voucher{
		Code:            "RF-" + strings.ToUpper(uuid.New().String()[:8]),
		AccountId:       accountID,
		Value:           refundValue,
		Status:          constants.VOUCHER_ACTIVE,
		ExpiresAt:       &expires,
		SourceInvoiceId: &invoiceID,
	}
	if err := vouchers.CreateVoucher(ctx, refund); err != nil {
		return nil, errors.Wrap(err, "create refund voucher")
	}
	log.Info().Uint("accountId", accountID).Str("code", refund.Code).Float64("value", refundValue).Msg("refund voucher issued")
	return refund, nil
}

func (l *Ledger) usableVoucher(ctx context.Context, voucherID *uint, vouchers VoucherRepository) (*model.Voucher, error) {
	if voucherID == nil {
		return nil, nil
	}
	if vouchers == nil {
		return nil, ErrVoucherUnavailable
	}
	v, err := vouchers.GetVoucherById(ctx, *voucherID)
	if err != nil {
		return nil, errors.Wrapf(err, "load voucher %d", *voucherID)
	}
	if v == nil || !v.Usable(l.now()) {
		return nil, errors.Wrapf(ErrVoucherUnavailable, "voucher %d", *voucherID)
	}
	return v, nil
}

func (l *Ledger) releaseVoucher(ctx context.Context, voucherID *uint, vouchers VoucherRepository) error {
	if voucherID == nil || vouchers == nil {
		return nil
	}
	v, err := vouchers.GetVoucherById(ctx, *voucherID)
	if err != nil {
		return errors.Wrapf(err, "load voucher %d", *voucherID)
	}
	if v == nil {
		return nil
	}
	v.IsUsed = false
	if err := vouchers.UpdateVoucher(ctx, v); err != nil {
		return errors.Wrapf(err, "update voucher %d", v.ID)
	}
	return nil
}
