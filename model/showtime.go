package model

import "time"

type Showtime struct {
	DTO
	PublicCode string    `gorm:"size:16;uniqueIndex" json:"publicCode"`
	StartTime  time.Time `gorm:"not null" json:"start"`
	Price      float64   `gorm:"not null" json:"price"`
	MovieId    uint      `gorm:"not null;index" json:"movieId"`
	Movie      Movie     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:MovieId" json:"movie"`
}
