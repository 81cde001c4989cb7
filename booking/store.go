package booking

import (
	"cinema_booking/loyalty"
	"cinema_booking/model"
	"cinema_booking/promotion"
	"cinema_booking/repository"
	"context"
	"time"
)

type CatalogRepository interface {
	GetShowtimeById(ctx context.Context, id uint) (*model.Showtime, error)
	GetSeatsByIds(ctx context.Context, ids []uint) ([]model.Seat, error)
	GetTakenSeatIds(ctx context.Context, showtimeId uint, seatIds []uint) ([]uint, error)
	GetFoodsByIds(ctx context.Context, ids []uint) ([]model.Food, error)
}

type InvoiceRepository interface {
	GetInvoiceByCode(ctx context.Context, code string) (*model.Invoice, error)
	GetInvoiceById(ctx context.Context, id uint) (*model.Invoice, error)
	CreateInvoice(ctx context.Context, invoice *model.Invoice) error
	SaveInvoice(ctx context.Context, invoice *model.Invoice) error
	GetPendingInvoiceCodesBefore(ctx context.Context, cutoff time.Time) ([]string, error)
}

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetPaymentByCode(ctx context.Context, code string) (*model.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status string) error
}

type LoyaltyRepository interface {
	GetRankById(ctx context.Context, id uint) (*model.Rank, error)
	GetPointHistory(ctx context.Context, accountId uint, p model.Pagination) ([]model.PointHistory, int64, error)
	GetVoucherByCode(ctx context.Context, code string) (*model.Voucher, error)
	GetVouchersByAccountId(ctx context.Context, accountId uint) ([]model.Voucher, error)
	ExpireVouchers(ctx context.Context, now time.Time) (int64, error)
}

// Store is everything a booking reads and writes. Inside Transaction the
// store handed to fn locks the rows it reads.
type Store interface {
	loyalty.Store
	loyalty.VoucherRepository
	promotion.Source
	promotion.MemberFinder
	promotion.InvoiceFinder
	CatalogRepository
	InvoiceRepository
	PaymentRepository
	LoyaltyRepository

	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type repoStore struct {
	*repository.Repository
}

// FromRepository serves a Store from the gorm repository.
func FromRepository(r *repository.Repository) Store {
	return repoStore{r}
}

func (s repoStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.Repository.Transaction(ctx, func(tx *repository.Repository) error {
		return fn(repoStore{tx})
	})
}
