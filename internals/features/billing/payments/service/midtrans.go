// file: internals/features/billing/payments/service/midtrans.go
package service

import (
	"fmt"
	"log"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"bimbelku_backend/internals/features/billing/payments/model"
)

var SnapClient snap.Client

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// GenerateSnapToken membuat token Snap Midtrans untuk satu payment les.
func GenerateSnapToken(p model.PaymentModel, name string, email string) (string, error) {
	if p.PaymentOrderID == nil || *p.PaymentOrderID == "" {
		return "", fmt.Errorf("payment %s belum punya order id", p.PaymentID)
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *p.PaymentOrderID,
			GrossAmt: int64(p.PaymentAmountIDR),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// HandlePaymentStatusWebhook dipanggil saat menerima notifikasi dari Midtrans.
// Hanya status gateway yang berubah; amount/date/lessons_count tidak pernah
// disentuh dari sini.
func HandlePaymentStatusWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)

	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	log.Println("📄 Order ID:", orderID)
	log.Println("📌 Transaction Status:", status)

	var payment model.PaymentModel
	if err := db.Where("payment_order_id = ?", orderID).First(&payment).Error; err != nil {
		log.Println("[ERROR] Payment tidak ditemukan:", err)
		return fmt.Errorf("payment with order_id %s not found", orderID)
	}

	var gwStatus string
	switch status {
	case "capture", "settlement":
		gwStatus = "paid"
		now := time.Now()
		payment.PaymentDate = now
	case "expire":
		gwStatus = "expired"
	case "cancel", "deny":
		gwStatus = "canceled"
	case "pending":
		gwStatus = "pending"
	default:
		log.Println("[INFO] Status tidak diproses:", status)
		return nil
	}

	payment.PaymentGatewayStatus = &gwStatus
	if err := db.Save(&payment).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan status payment:", err)
		return err
	}
	return nil
}
