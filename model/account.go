package model

type Account struct {
	DTO
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	Password     string  `gorm:"not null" json:"-"`
	Email        string  `gorm:"index" json:"email"`
	RefreshToken string  `json:"-"`
	Active       bool    `gorm:"not null;default:true" json:"active"`
	Role         string  `gorm:"not null;default:'CUSTOMER'" json:"role"`
	Member       *Member `gorm:"foreignKey:AccountId" json:"member,omitempty"`
}

type RegisterInput struct {
	Username string `validate:"required,min=3,max=50" json:"username"`
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required,min=6,max=50" json:"password"`
}

type LoginInput struct {
	Username string `validate:"required" json:"username"`
	Password string `validate:"required" json:"password"`
}

type RefreshTokenInput struct {
	RefreshToken string `validate:"required" json:"refreshToken"`
}
