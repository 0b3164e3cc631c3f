package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(billID int) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the printable receipt of a bill.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(billID int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/receipt.html?bill_id=%d", g.BaseURL, billID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
