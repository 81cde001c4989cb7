package model

type SeatType struct {
	DTO
	Name         string  `gorm:"not null;uniqueIndex" json:"name"` // NORMAL VIP COUPLE
	PricePercent float64 `gorm:"type:decimal(6,2);not null;default:100" json:"pricePercent"`
}
