package model

type Movie struct {
	DTO
	Title        string `gorm:"not null;index" json:"title"`
	TitleEnglish string `gorm:"index" json:"titleEnglish"`
	Duration     int    `gorm:"not null" json:"duration"`
}
