package model

type Payment struct {
	DTO
	InvoiceId   uint    `gorm:"not null;index" json:"invoiceId"`
	Amount      float64 `gorm:"not null" json:"amount"`
	PaymentCode string  `gorm:"uniqueIndex" json:"paymentCode"`
	Status      string  `gorm:"default:PENDING" json:"status"`
	Method      string  `json:"method"`

	Invoice Invoice `gorm:"foreignKey:InvoiceId" json:"-"`
}

type CreatePaymentInput struct {
	InvoiceCode string `json:"invoiceCode" validate:"required"`
}

// VNPayConfig holds the merchant settings of the VNPay gateway.
type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	IPNURL     string
}

// PaymentRequest is one gateway checkout. Amount is whole VND and TxnRef
// is the payment code.
type PaymentRequest struct {
	Amount    int64
	OrderInfo string
	TxnRef    string
	IPAddr    string
}

// PaymentResponse is the verified outcome of a gateway callback.
type PaymentResponse struct {
	IsSuccess bool   `json:"isSuccess"`
	TxnRef    string `json:"txnRef"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}
