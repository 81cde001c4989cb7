package promotion

import "time"

// BookingContext is the per-request snapshot a promotion is evaluated against.
type BookingContext struct {
	MemberID         *uint
	SeatCount        int
	MovieID          uint
	MovieName        string
	MovieNameEnglish string
	ShowDate         time.Time
	SeatTypeIDs      []uint
	SeatTypeNames    []string
	PricePercents    []float64
}
