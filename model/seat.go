package model

type Seat struct {
	DTO
	Row        string   `gorm:"not null" json:"row"`
	Column     int      `gorm:"not null" json:"column"`
	SeatTypeId uint     `json:"seatTypeId"`
	SeatType   SeatType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"seatType"`
}
