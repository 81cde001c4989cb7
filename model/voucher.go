package model

import (
	"cinema_booking/constants"
	"time"
)

type Voucher struct {
	DTO
	Code            string     `gorm:"size:32;uniqueIndex;not null" json:"code"`
	AccountId       uint       `gorm:"not null;index" json:"accountId"`
	Value           float64    `gorm:"type:decimal(12,2);not null" json:"value"`
	IsUsed          bool       `gorm:"not null;default:false" json:"isUsed"`
	Status          string     `gorm:"size:16;not null;default:'ACTIVE'" json:"status"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	SourceInvoiceId *uint      `json:"sourceInvoiceId,omitempty"`
}

// Usable reports whether the voucher can be applied at the given instant.
func (v Voucher) Usable(at time.Time) bool {
	if v.IsUsed || v.Status == constants.VOUCHER_EXPIRED {
		return false
	}
	return v.ExpiresAt == nil || at.Before(*v.ExpiresAt)
}
