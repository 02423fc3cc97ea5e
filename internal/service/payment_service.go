package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"time"

	"ai-commerce-chat-be/internal/config"
	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/pkg/logger"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	"ai-commerce-chat-be/pkg/events"
	pktNats "ai-commerce-chat-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const (
	topupStatusPending = "PENDING"
	topupStatusSettled = "SETTLED"
	topupStatusFailed  = "FAILED"

	// IDR per credit on the pay-as-you-go tier.
	pricePerCredit = int64(150)
)

type IPaymentService interface {
	CreateTopup(ctx context.Context, storeId uuid.UUID, req *dto.TopupRequest) (*dto.TopupResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	cfg            *config.Config
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewPaymentService(cfg *config.Config, uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IPaymentService {
	return &paymentService{
		cfg:            cfg,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *paymentService) CreateTopup(ctx context.Context, storeId uuid.UUID, req *dto.TopupRequest) (*dto.TopupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	topupId := uuid.New()
	orderRef := fmt.Sprintf("topup-%s", topupId)
	amount := int64(req.Credits) * pricePerCredit

	topup := &entity.CreditTopup{
		Id:        topupId,
		StoreId:   storeId,
		OrderRef:  orderRef,
		Credits:   req.Credits,
		Amount:    amount,
		Status:    topupStatusPending,
		CreatedAt: time.Now(),
	}
	if err := uow.CreditTopupRepository().Create(ctx, topup); err != nil {
		return nil, err
	}

	// External call after the pending row is durable, never inside a tx.
	var sClient snap.Client
	env := midtrans.Sandbox
	if s.cfg.Payment.MidtransIsProd {
		env = midtrans.Production
	}
	sClient.New(s.cfg.Payment.MidtransServerKey, env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderRef,
			GrossAmt: amount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/dashboard/billing?payment=success", s.cfg.App.ClientURL),
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    topupId.String(),
				Price: pricePerCredit,
				Qty:   int32(req.Credits),
				Name:  "AI assistant credits",
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.TopupResponse{
		TopupId:         topupId,
		OrderRef:        orderRef,
		Credits:         req.Credits,
		Amount:          amount,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	serverKey := s.cfg.Payment.MidtransServerKey
	if serverKey == "" {
		return fmt.Errorf("payment gateway not configured")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.logger.Warn("PaymentService", "Webhook signature mismatch", map[string]interface{}{
			"order_ref": req.OrderId,
		})
		return dto.ErrInvalidSignature
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	topup, err := uow.CreditTopupRepository().FindByOrderRef(ctx, req.OrderId)
	if err != nil {
		return err
	}
	if topup == nil {
		return dto.ErrTopupNotFound
	}

	var newStatus string
	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = topupStatusSettled
	case "deny", "cancel", "expire":
		newStatus = topupStatusFailed
	case "pending":
		return nil
	default:
		s.logger.Warn("PaymentService", "Unhandled transaction status", map[string]interface{}{
			"order_ref": req.OrderId,
			"status":    req.TransactionStatus,
		})
		return nil
	}

	// Midtrans retries notifications; a settled top-up must credit once.
	if topup.Status == newStatus {
		return nil
	}
	previous := topup.Status
	topup.Status = newStatus

	if err := uow.CreditTopupRepository().Update(ctx, topup); err != nil {
		return err
	}

	if newStatus == topupStatusSettled && previous != topupStatusSettled {
		if err := uow.StoreRepository().AdjustCredits(ctx, topup.StoreId, topup.Credits); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("PaymentService", "Top-up status updated", map[string]interface{}{
		"order_ref": topup.OrderRef,
		"from":      previous,
		"to":        newStatus,
	})

	if newStatus == topupStatusSettled && s.eventPublisher != nil {
		evt := events.NewCreditTopupSettled(topup.StoreId.String(), topup.OrderRef, topup.Credits)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("PaymentService", "Settlement event publish failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return nil
}
