package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kvoice/kvoice/internal/identity"
	"github.com/kvoice/kvoice/internal/payment/domain"
	"github.com/kvoice/kvoice/pkg/db/option"
	"github.com/kvoice/kvoice/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Payment]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("payment.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Payment](p.DB),
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordPaymentRequest) (domain.Payment, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return domain.Payment{}, err
	}

	if req.Amount.IsNegative() {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	status := req.Status
	if status == "" {
		status = domain.PaymentStatusPending
	}
	if status != domain.PaymentStatusVerified && status != domain.PaymentStatusPending {
		return domain.Payment{}, domain.ErrInvalidStatus
	}

	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = domain.DefaultMethod
	}

	now := time.Now().UTC().UnixMilli()
	date := req.Date
	if date == 0 {
		date = now
	}

	payment := domain.Payment{
		ID:            s.genID.Generate(),
		AccountID:     accountID,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		Amount:        req.Amount,
		Date:          date,
		Method:        method,
		Reference:     strings.TrimSpace(req.Reference),
		ClientName:    strings.TrimSpace(req.ClientName),
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, &payment); err != nil {
		return domain.Payment{}, err
	}

	return payment, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Payment, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Find(ctx, &domain.Payment{AccountID: accountID},
		option.OrderBy("date DESC"),
	)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) ListByClient(ctx context.Context, clientName string) ([]domain.Payment, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Find(ctx, &domain.Payment{AccountID: accountID},
		option.Where("client_name = ?", strings.TrimSpace(clientName)),
		option.OrderBy("date DESC"),
	)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) (domain.Payment, error) {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return domain.Payment{}, err
	}

	if status != domain.PaymentStatusVerified && status != domain.PaymentStatusPending {
		return domain.Payment{}, domain.ErrInvalidStatus
	}

	paymentID, err := parseID(id)
	if err != nil {
		return domain.Payment{}, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Payment{ID: paymentID, AccountID: accountID})
	if err != nil {
		return domain.Payment{}, err
	}
	if item == nil {
		return domain.Payment{}, domain.ErrNotFound
	}

	now := time.Now().UTC().UnixMilli()
	if err := s.repo.Update(ctx, item.ID.String(), map[string]any{
		"status":     status,
		"updated_at": now,
	}); err != nil {
		return domain.Payment{}, err
	}

	item.Status = status
	item.UpdatedAt = now
	return *item, nil
}

// Delete removes a receipt. The referenced invoice keeps its status:
// payment deletion never reverts an invoice to unpaid.
func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, err := accountFromContext(ctx)
	if err != nil {
		return err
	}

	paymentID, err := parseID(id)
	if err != nil {
		return err
	}

	item, err := s.repo.FindOne(ctx, &domain.Payment{ID: paymentID, AccountID: accountID})
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, item.ID.String())
}

func collect(items []*domain.Payment) []domain.Payment {
	payments := make([]domain.Payment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		payments = append(payments, *item)
	}
	return payments
}

func accountFromContext(ctx context.Context) (string, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return "", domain.ErrInvalidAccount
	}
	return id.AccountID, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
