package model

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Promotion struct {
	DTO
	Title         string    `gorm:"not null" json:"title"`
	Slug          string    `gorm:"uniqueIndex" json:"slug"`
	Description   string    `gorm:"type:text" json:"description"`
	IsActive      bool      `gorm:"not null;default:true" json:"isActive"`
	StartTime     time.Time `gorm:"not null" json:"startTime"`
	EndTime       time.Time `gorm:"not null" json:"endTime"`
	DiscountLevel *float64  `gorm:"type:decimal(5,2)" json:"discountLevel"`

	Conditions []PromotionCondition `gorm:"foreignKey:PromotionId" json:"conditions"`
}

func (p *Promotion) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" && p.Title != "" {
		p.Slug = slug.Make(p.Title)
	}
	return nil
}

type PromotionCondition struct {
	DTO
	PromotionId  uint   `gorm:"not null;index" json:"promotionId"`
	TargetEntity string `gorm:"size:32" json:"targetEntity"` // "food" or empty for booking level
	TargetField  string `gorm:"size:32;not null" json:"targetField"`
	Operator     string `gorm:"size:4;not null" json:"operator"` // = >= > <= <
	TargetValue  string `gorm:"not null" json:"targetValue"`
}
