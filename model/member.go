package model

// Member is the loyalty record owned by an account. RankId is derived from
// TotalPoints and is only written by the loyalty ledger.
type Member struct {
	DTO
	AccountId   uint  `gorm:"uniqueIndex;not null" json:"accountId"`
	Score       int   `gorm:"not null;default:0" json:"score"`
	TotalPoints int   `gorm:"not null;default:0" json:"totalPoints"`
	RankId      *uint `json:"rankId"`
	Rank        *Rank `gorm:"foreignKey:RankId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"rank,omitempty"`
}

type Rank struct {
	DTO
	Name                   string  `gorm:"not null;uniqueIndex" json:"name"`
	RequiredPoints         int     `gorm:"not null;default:0;index" json:"requiredPoints"`
	DiscountPercentage     float64 `gorm:"type:decimal(5,2);not null;default:0" json:"discountPercentage"`
	PointEarningPercentage float64 `gorm:"type:decimal(5,2);not null;default:1" json:"pointEarningPercentage"`
}

// PointHistory is an append-only record of applied ledger mutations.
type PointHistory struct {
	DTO
	AccountId  uint   `gorm:"not null;index" json:"accountId"`
	Delta      int    `gorm:"not null" json:"delta"`
	ScoreAfter int    `gorm:"not null" json:"scoreAfter"`
	Reason     string `gorm:"size:32;not null" json:"reason"`
	TestMode   bool   `gorm:"not null;default:false" json:"testMode"`
}

type MemberResponse struct {
	AccountId   uint   `json:"accountId"`
	Score       int    `json:"score"`
	TotalPoints int    `json:"totalPoints"`
	RankName    string `json:"rankName"`
	NextRank    string `json:"nextRank,omitempty"`
	ToNextRank  int    `json:"toNextRank,omitempty"`
}

type AdjustPointsInput struct {
	AccountId             uint `validate:"required,gt=0" json:"accountId"`
	Amount                int  `validate:"required,gt=0" json:"amount"`
	Deduct                bool `json:"deduct"`
	DeductFromTotalPoints bool `json:"deductFromTotalPoints"`
	IsTestMode            bool `json:"isTestMode"`
}
