package model

type Food struct {
	DTO
	Name     string  `gorm:"not null" json:"name"`
	Price    float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	IsActive bool    `gorm:"not null;default:true" json:"isActive"`
}
