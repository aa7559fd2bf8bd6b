package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// TrackingQRGenerator encodes the public tracking URL for an order.
type TrackingQRGenerator struct {
	BaseURL string
}

func (g TrackingQRGenerator) Generate(orderNumber string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/track?order=%s", g.BaseURL, orderNumber)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
