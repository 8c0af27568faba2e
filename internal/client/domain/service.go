package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	MomoNumber  string `json:"momoNumber"`
	MomoNetwork string `json:"momoNetwork"`
	Location    string `json:"location"`
}

type UpdateClientRequest struct {
	Name        *string       `json:"name"`
	Email       *string       `json:"email"`
	MomoNumber  *string       `json:"momoNumber"`
	MomoNetwork *string       `json:"momoNetwork"`
	Location    *string       `json:"location"`
	Status      *ClientStatus `json:"status"`
}

// ResolveClientRequest carries the client fields named on an invoice.
// ID may be the "new" sentinel or empty for roster-less clients.
type ResolveClientRequest struct {
	ID          string
	Name        string
	Email       string
	MomoNumber  string
	MomoNetwork string
	Location    string
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error

	// ResolveForInvoice returns the roster entry backing an invoice,
	// creating it when the sentinel id is supplied, and bumps its
	// denormalized invoice count.
	ResolveForInvoice(ctx context.Context, req ResolveClientRequest) (Client, error)
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
