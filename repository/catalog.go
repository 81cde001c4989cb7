package repository

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"context"

	"github.com/pkg/errors"
)

func (r *Repository) GetShowtimeById(ctx context.Context, id uint) (*model.Showtime, error) {
	var showtime model.Showtime
	found, err := first(r.conn(ctx).Preload("Movie").Where("id = ?", id), &showtime, "showtime")
	if err != nil || !found {
		return nil, err
	}
	return &showtime, nil
}

func (r *Repository) GetSeatsByIds(ctx context.Context, ids []uint) ([]model.Seat, error) {
	var seats []model.Seat
	if err := r.conn(ctx).Preload("SeatType").Where("id IN ?", ids).Order("id asc").Find(&seats).Error; err != nil {
		return nil, errors.Wrap(err, "query seats")
	}
	return seats, nil
}

// GetTakenSeatIds lists the seats already on a live invoice for the showtime.
func (r *Repository) GetTakenSeatIds(ctx context.Context, showtimeId uint, seatIds []uint) ([]uint, error) {
	var taken []uint
	err := r.conn(ctx).Model(&model.InvoiceSeat{}).
		Joins("JOIN invoices ON invoices.id = invoice_seats.invoice_id").
		Where("invoice_seats.showtime_id = ? AND invoice_seats.seat_id IN ? AND invoices.status <> ?", showtimeId, seatIds, constants.INVOICE_CANCELLED).
		Where("invoices.deleted_at IS NULL AND invoice_seats.deleted_at IS NULL").
		Pluck("invoice_seats.seat_id", &taken).Error
	if err != nil {
		return nil, errors.Wrap(err, "query taken seats")
	}
	return taken, nil
}

func (r *Repository) GetFoodsByIds(ctx context.Context, ids []uint) ([]model.Food, error) {
	var foods []model.Food
	if len(ids) == 0 {
		return foods, nil
	}
	if err := r.conn(ctx).Where("id IN ? AND is_active = ?", ids, true).Find(&foods).Error; err != nil {
		return nil, errors.Wrap(err, "query foods")
	}
	return foods, nil
}
