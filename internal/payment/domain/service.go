package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	InvoiceNumber string          `json:"invoiceId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          int64           `json:"date"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference"`
	ClientName    string          `json:"clientName"`
	Status        PaymentStatus   `json:"status"`
}

type Service interface {
	Record(ctx context.Context, req RecordPaymentRequest) (Payment, error)
	List(ctx context.Context) ([]Payment, error)
	ListByClient(ctx context.Context, clientName string) ([]Payment, error)
	UpdateStatus(ctx context.Context, id string, status PaymentStatus) (Payment, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
