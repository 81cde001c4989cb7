package repository

import (
	"cinema_booking/model"
	"context"

	"github.com/pkg/errors"
)

func (r *Repository) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return errors.Wrap(r.conn(ctx).Omit("Invoice").Create(payment).Error, "create payment")
}

func (r *Repository) GetPaymentByCode(ctx context.Context, code string) (*model.Payment, error) {
	var payment model.Payment
	found, err := first(r.locking(ctx).Where("payment_code = ?", code), &payment, "payment")
	if err != nil || !found {
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, id uint, status string) error {
	err := r.conn(ctx).Model(&model.Payment{}).Where("id = ?", id).Update("status", status).Error
	return errors.Wrap(err, "update payment status")
}
