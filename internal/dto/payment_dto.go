package dto

import "github.com/google/uuid"

// --- Credit top-up DTOs ---

type TopupRequest struct {
	Credits int `json:"credits" validate:"required,min=100,max=100000"`
}

type TopupResponse struct {
	TopupId         uuid.UUID `json:"topup_id"`
	OrderRef        string    `json:"order_ref"`
	Credits         int       `json:"credits"`
	Amount          int64     `json:"amount"`
	SnapToken       string    `json:"snap_token"`
	SnapRedirectUrl string    `json:"snap_redirect_url"`
}

type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}
