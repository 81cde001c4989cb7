package model

import "time"

type Invoice struct {
	DTO
	PublicCode        string     `gorm:"size:20;uniqueIndex" json:"publicCode"`
	AccountId         *uint      `gorm:"index" json:"accountId,omitempty"`
	ShowtimeId        uint       `gorm:"not null;index" json:"showtimeId"`
	Showtime          Showtime   `json:"showtime"`
	Status            string     `gorm:"size:16;not null;default:'PENDING'" json:"status"` // PENDING, PAID, CANCELLED
	PaymentMethod     string     `gorm:"size:16" json:"paymentMethod"`                     // CASH, VNPAY
	Subtotal          float64    `gorm:"type:decimal(12,2)" json:"subtotal"`
	PromotionDiscount float64    `gorm:"type:decimal(12,2)" json:"promotionDiscount"`
	RankDiscount      float64    `gorm:"type:decimal(12,2)" json:"rankDiscount"`
	VoucherAmount     float64    `gorm:"type:decimal(12,2)" json:"voucherAmount"`
	UsedPointsValue   float64    `gorm:"type:decimal(12,2)" json:"usedPointsValue"`
	TotalFoodPrice    float64    `gorm:"type:decimal(12,2)" json:"totalFoodPrice"`
	TotalPrice        float64    `gorm:"type:decimal(12,2)" json:"totalPrice"`
	AddScore          int        `gorm:"not null;default:0" json:"addScore"`
	UseScore          int        `gorm:"not null;default:0" json:"useScore"`
	VoucherId         *uint      `json:"voucherId,omitempty"`
	PromotionId       *uint      `json:"promotionId,omitempty"`
	RefundAmount      float64    `gorm:"type:decimal(12,2)" json:"refundAmount"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
	Email             string     `json:"email"`

	Seats []InvoiceSeat `gorm:"foreignKey:InvoiceId" json:"seats"`
	Foods []InvoiceFood `gorm:"foreignKey:InvoiceId" json:"foods"`
}

type InvoiceSeat struct {
	DTO
	InvoiceId     uint    `gorm:"not null;index" json:"invoiceId"`
	ShowtimeId    uint    `gorm:"not null;index" json:"showtimeId"`
	SeatId        uint    `gorm:"not null;index" json:"seatId"`
	Price         float64 `gorm:"type:decimal(12,2)" json:"price"`
	OriginalPrice float64 `gorm:"type:decimal(12,2)" json:"originalPrice"`
	Seat          Seat    `json:"seat"`
}

type InvoiceFood struct {
	DTO
	InvoiceId     uint    `gorm:"not null;index" json:"invoiceId"`
	FoodId        uint    `gorm:"not null" json:"foodId"`
	Name          string  `json:"name"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	UnitPrice     float64 `gorm:"type:decimal(12,2)" json:"unitPrice"`
	Price         float64 `gorm:"type:decimal(12,2)" json:"price"`
	PromotionName *string `json:"promotionName"`
}

type FoodItemInput struct {
	FoodId   uint `validate:"required,gt=0" json:"foodId"`
	Quantity int  `validate:"required,min=1,max=20" json:"quantity"`
}

type QuoteInput struct {
	ShowtimeId  uint            `validate:"required,gt=0" json:"showtimeId"`
	SeatIds     []uint          `validate:"required,min=1,max=10,dive,gt=0" json:"seatIds"`
	Foods       []FoodItemInput `validate:"omitempty,dive" json:"foods"`
	VoucherCode string          `validate:"omitempty,max=32" json:"voucherCode"`
	UseScore    int             `validate:"omitempty,min=0" json:"useScore"`
}

type BookingInput struct {
	QuoteInput
	PaymentMethod string `validate:"required,oneof=CASH VNPAY" json:"paymentMethod"`
	Email         string `validate:"omitempty,email" json:"email"`
}
