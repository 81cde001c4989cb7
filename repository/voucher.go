package repository

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"context"
	"time"

	"github.com/pkg/errors"
)

func (r *Repository) GetVoucherById(ctx context.Context, id uint) (*model.Voucher, error) {
	var voucher model.Voucher
	found, err := first(r.conn(ctx).Where("id = ?", id), &voucher, "voucher")
	if err != nil || !found {
		return nil, err
	}
	return &voucher, nil
}

func (r *Repository) GetVoucherByCode(ctx context.Context, code string) (*model.Voucher, error) {
	var voucher model.Voucher
	found, err := first(r.locking(ctx).Where("code = ?", code), &voucher, "voucher")
	if err != nil || !found {
		return nil, err
	}
	return &voucher, nil
}

func (r *Repository) UpdateVoucher(ctx context.Context, voucher *model.Voucher) error {
	err := r.conn(ctx).Model(voucher).Select("IsUsed", "Status").Updates(voucher).Error
	return errors.Wrap(err, "update voucher")
}

func (r *Repository) CreateVoucher(ctx context.Context, voucher *model.Voucher) error {
	return errors.Wrap(r.conn(ctx).Create(voucher).Error, "create voucher")
}

func (r *Repository) GetVouchersByAccountId(ctx context.Context, accountId uint) ([]model.Voucher, error) {
	var vouchers []model.Voucher
	if err := r.conn(ctx).Where("account_id = ?", accountId).Order("id desc").Find(&vouchers).Error; err != nil {
		return nil, errors.Wrap(err, "query vouchers")
	}
	return vouchers, nil
}

// ExpireVouchers flags unused vouchers whose expiry has passed.
func (r *Repository) ExpireVouchers(ctx context.Context, now time.Time) (int64, error) {
	res := r.conn(ctx).Model(&model.Voucher{}).
		Where("status = ? AND is_used = ? AND expires_at IS NOT NULL AND expires_at <= ?", constants.VOUCHER_ACTIVE, false, now).
		Update("status", constants.VOUCHER_EXPIRED)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "expire vouchers")
	}
	return res.RowsAffected, nil
}
