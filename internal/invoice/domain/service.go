package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// LineItemInput is a line item as submitted by the caller.
type LineItemInput struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ClientInput names the billing counterparty on an invoice. ID may be
// a roster id or the "new" sentinel.
type ClientInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	MomoNumber  string `json:"momoNumber"`
	MomoNetwork string `json:"momoNetwork"`
	Location    string `json:"location"`
}

type CreateInvoiceRequest struct {
	InvoiceNumber    string          `json:"invoiceNumber"`
	Date             string          `json:"date"`
	DueDate          string          `json:"dueDate"`
	Items            []LineItemInput `json:"items"`
	Status           InvoiceStatus   `json:"status"`
	Currency         string          `json:"currency"`
	VATEnabled       bool            `json:"vatEnabled"`
	LeviesEnabled    bool            `json:"leviesEnabled"`
	CovidLevyEnabled bool            `json:"covidLevyEnabled"`
	Client           ClientInput     `json:"client"`
}

// UpdateInvoiceRequest patches an existing invoice. Nil fields keep
// their prior value; in particular a nil Status never changes the
// lifecycle state and a nil BusinessInfo never re-snapshots the
// profile.
type UpdateInvoiceRequest struct {
	InvoiceNumber    *string           `json:"invoiceNumber"`
	Date             *string           `json:"date"`
	DueDate          *string           `json:"dueDate"`
	Items            []LineItemInput   `json:"items"`
	Status           *InvoiceStatus    `json:"status"`
	Currency         *string           `json:"currency"`
	VATEnabled       *bool             `json:"vatEnabled"`
	LeviesEnabled    *bool             `json:"leviesEnabled"`
	CovidLevyEnabled *bool             `json:"covidLevyEnabled"`
	Client           *ClientInput      `json:"client"`
	BusinessInfo     *BusinessSnapshot `json:"businessInfo"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Update(ctx context.Context, id string, req UpdateInvoiceRequest) (Invoice, error)
	MarkPaid(ctx context.Context, id string) (Invoice, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")

	// Validation failures: the caller must fix the input.
	ErrMissingClientName      = errors.New("missing_client_name")
	ErrMissingItemDescription = errors.New("missing_item_description")

	// ErrDuplicateInvoiceNumber reports a number collision within the
	// account. Numbers are unique per account, not globally.
	ErrDuplicateInvoiceNumber = errors.New("duplicate_invoice_number")

	// ErrQuotaExhausted is a lockout, not a validation failure: the
	// guest must upgrade, not fix input. Nothing is persisted.
	ErrQuotaExhausted = errors.New("quota_exhausted")
)
