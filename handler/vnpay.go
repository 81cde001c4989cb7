package handler

import (
	"cinema_booking/config"
	"cinema_booking/constants"
	"cinema_booking/model"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

const vnpayTimeLayout = "20060102150405"

type VNPay struct {
	Config model.VNPayConfig
	now    func() time.Time
}

func NewVNPay() *VNPay {
	appURL := config.Config("APP_URL")
	return &VNPay{
		Config: model.VNPayConfig{
			TmnCode:    config.Config("VNP_TMNCODE"),
			HashSecret: config.Config("VNP_HASHSECRET"),
			BaseURL:    config.Config("VNP_URL"),
			ReturnURL:  appURL + "/vnpay/return",
			IPNURL:     appURL + "/vnpay/ipn",
		},
		now: time.Now,
	}
}

// BuildPaymentUrl returns the signed gateway URL; amounts are sent in VND x 100.
func (v *VNPay) BuildPaymentUrl(req model.PaymentRequest) (string, error) {
	now := v.now()
	params := url.Values{}
	params.Add("vnp_Version", "2.1.0")
	params.Add("vnp_Command", "pay")
	params.Add("vnp_TmnCode", v.Config.TmnCode)
	params.Add("vnp_Amount", strconv.FormatInt(req.Amount*100, 10))
	params.Add("vnp_CreateDate", now.Format(vnpayTimeLayout))
	params.Add("vnp_CurrCode", "VND")
	params.Add("vnp_IpAddr", req.IPAddr)
	params.Add("vnp_Locale", "vn")
	params.Add("vnp_OrderInfo", req.OrderInfo)
	params.Add("vnp_OrderType", "other")
	params.Add("vnp_ReturnUrl", v.Config.ReturnURL)
	params.Add("vnp_TxnRef", req.TxnRef)
	params.Add("vnp_ExpireDate", now.Add(15*time.Minute).Format(vnpayTimeLayout))

	// url.Values.Encode sorts by key, which is the order VNPay signs.
	query := params.Encode()
	return v.Config.BaseURL + "?" + query + "&vnp_SecureHash=" + v.generateHash(query), nil
}

// VerifyReturnUrl checks the browser redirect from the gateway.
func (v *VNPay) VerifyReturnUrl(query url.Values) model.PaymentResponse {
	if !v.verify(query) {
		return model.PaymentResponse{IsSuccess: false, Message: "Invalid hash"}
	}
	if query.Get("vnp_ResponseCode") != "00" {
		return model.PaymentResponse{IsSuccess: false, TxnRef: query.Get("vnp_TxnRef"), Message: "Payment failed"}
	}
	amount, _ := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)
	return model.PaymentResponse{
		IsSuccess: true,
		TxnRef:    query.Get("vnp_TxnRef"),
		Amount:    amount / 100,
		Status:    constants.INVOICE_PAID,
	}
}

// VerifyIPN checks the server to server notification.
func (v *VNPay) VerifyIPN(query url.Values) model.PaymentResponse {
	if !v.verify(query) {
		return model.PaymentResponse{IsSuccess: false, Message: "Invalid IPN hash"}
	}
	if query.Get("vnp_ResponseCode") != "00" {
		return model.PaymentResponse{IsSuccess: false, TxnRef: query.Get("vnp_TxnRef"), Message: "IPN failed"}
	}
	return model.PaymentResponse{
		IsSuccess: true,
		TxnRef:    query.Get("vnp_TxnRef"),
		Status:    constants.INVOICE_PAID,
	}
}

func (v *VNPay) verify(query url.Values) bool {
	secureHash := query.Get("vnp_SecureHash")
	signed := url.Values{}
	for k, vals := range query {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		signed[k] = vals
	}
	return hmac.Equal([]byte(secureHash), []byte(v.generateHash(signed.Encode())))
}

func (v *VNPay) generateHash(data string) string {
	h := hmac.New(sha512.New, []byte(v.Config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
