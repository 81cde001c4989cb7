package booking

import "github.com/pkg/errors"

var (
	ErrShowtimeNotFound     = errors.New("showtime not found")
	ErrSeatNotFound         = errors.New("one or more seats do not exist")
	ErrSeatTaken            = errors.New("one or more seats are already booked")
	ErrFoodNotFound         = errors.New("one or more food items do not exist")
	ErrVoucherInvalid       = errors.New("voucher is invalid, used or expired")
	ErrInsufficientScore    = errors.New("not enough points")
	ErrPointsRequireAccount = errors.New("points and vouchers require a member account")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceNotOwned      = errors.New("invoice belongs to another account")
	ErrInvoiceNotPending    = errors.New("invoice is not awaiting payment")
	ErrAlreadyCancelled     = errors.New("invoice already cancelled")
	ErrTooLateToCancel      = errors.New("too late to cancel this booking")
)
