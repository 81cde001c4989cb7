package repository

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

func (r *Repository) GetInvoicesByAccountId(ctx context.Context, accountId uint) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := r.conn(ctx).Where("account_id = ?", accountId).Order("id desc").Find(&invoices).Error; err != nil {
		return nil, errors.Wrap(err, "query invoices")
	}
	return invoices, nil
}

func (r *Repository) GetInvoiceByCode(ctx context.Context, code string) (*model.Invoice, error) {
	return r.getInvoice(ctx, "public_code = ?", code)
}

func (r *Repository) GetInvoiceById(ctx context.Context, id uint) (*model.Invoice, error) {
	return r.getInvoice(ctx, "id = ?", id)
}

func (r *Repository) getInvoice(ctx context.Context, where string, arg any) (*model.Invoice, error) {
	var invoice model.Invoice
	q := r.locking(ctx).
		Preload("Seats.Seat.SeatType").
		Preload("Foods").
		Preload("Showtime.Movie").
		Where(where, arg)
	found, err := first(q, &invoice, "invoice")
	if err != nil || !found {
		return nil, err
	}
	return &invoice, nil
}

func (r *Repository) CreateInvoice(ctx context.Context, invoice *model.Invoice) error {
	return errors.Wrap(r.conn(ctx).Omit("Showtime").Create(invoice).Error, "create invoice")
}

// SaveInvoice updates the invoice row without touching its lines.
func (r *Repository) SaveInvoice(ctx context.Context, invoice *model.Invoice) error {
	return errors.Wrap(r.conn(ctx).Omit(clause.Associations).Save(invoice).Error, "save invoice")
}

// GetPendingInvoiceCodesBefore lists unpaid invoices created before the cutoff.
func (r *Repository) GetPendingInvoiceCodesBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	var codes []string
	err := r.conn(ctx).Model(&model.Invoice{}).
		Where("status = ? AND created_at < ?", constants.INVOICE_PENDING, cutoff).
		Order("id").
		Pluck("public_code", &codes).Error
	if err != nil {
		return nil, errors.Wrap(err, "query pending invoices")
	}
	return codes, nil
}
