package constants

const (
	ROLE_ADMIN    = "ADMIN"
	ROLE_CUSTOMER = "CUSTOMER"
)

const (
	INVOICE_PENDING   = "PENDING"
	INVOICE_PAID      = "PAID"
	INVOICE_CANCELLED = "CANCELLED"

	PAYMENT_CASH  = "CASH"
	PAYMENT_VNPAY = "VNPAY"

	VOUCHER_ACTIVE  = "ACTIVE"
	VOUCHER_EXPIRED = "EXPIRED"
)

// Reasons recorded in the point history.
const (
	POINT_REASON_BOOKING       = "BOOKING"
	POINT_REASON_REDEMPTION    = "REDEMPTION"
	POINT_REASON_REFUND        = "REFUND"
	POINT_REASON_CLAWBACK      = "CLAWBACK"
	POINT_REASON_MANUAL        = "MANUAL"
	POINT_REASON_MANUAL_DEDUCT = "MANUAL_DEDUCT"
)

const (
	ERROR_INTERNAL_ERROR     = "Internal server error"
	ERROR_UNAUTHORIZED       = "Please sign in"
	ERROR_FORBIDDEN          = "Permission denied"
	ERROR_INVALID_INPUT      = "Invalid input"
	DATA_INPUT_IS_NOT_NUMBER = "Parameter must be a number"
	ERROR_ACCOUNT_NOT_FOUND  = "Account not found"
	ERROR_INVOICE_NOT_FOUND  = "Invoice not found"
	ERROR_WRONG_CREDENTIALS  = "Wrong username or password"
	ERROR_USERNAME_EXISTS    = "Username already exists"
)
