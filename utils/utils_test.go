package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateQRCodeIsPNG(t *testing.T) {
	png, err := GenerateQRCode("INV-1234ABCD", 128)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}

	url, err := QRCodeDataURL("INV-1234ABCD", 128)
	if err != nil {
		t.Fatalf("data url: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected data url prefix %q", url[:30])
	}
}

func TestRefundTemplateWithoutVoucher(t *testing.T) {
	var body bytes.Buffer
	if err := refundTmpl.Execute(&body, RefundEmailData{InvoiceCode: "INV-1"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(body.String(), "No payment was taken") {
		t.Fatalf("body = %q", body.String())
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr("") != nil {
		t.Fatalf("empty string should give nil")
	}
	if p := StringPtr("x"); p == nil || *p != "x" {
		t.Fatalf("StringPtr(x) = %v", p)
	}
}
