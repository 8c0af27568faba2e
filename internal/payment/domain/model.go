// Package domain contains payment receipt models.
package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the verification state of a receipt.
type PaymentStatus string

const (
	PaymentStatusVerified PaymentStatus = "Verified"
	PaymentStatusPending  PaymentStatus = "Pending"
)

// DefaultMethod is the label stamped on quick-action receipts.
const DefaultMethod = "Cash/Other"

// Payment is a receipt event. It references the invoice by its
// human-readable number, not its id, and its lifecycle is independent
// of the invoice: deleting one never touches the other.
type Payment struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	AccountID     string          `json:"-" gorm:"type:text;not null;index"`
	InvoiceNumber string          `json:"invoiceId" gorm:"type:text;not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(18,4);not null"`
	Date          int64           `json:"date" gorm:"not null"`
	Method        string          `json:"method" gorm:"type:text;not null"`
	Reference     string          `json:"reference" gorm:"type:text"`
	ClientName    string          `json:"clientName" gorm:"type:text;not null;index"`
	Status        PaymentStatus   `json:"status" gorm:"type:text;not null;default:'Pending'"`
	CreatedAt     int64           `json:"createdAt" gorm:"not null"`
	UpdatedAt     int64           `json:"updatedAt" gorm:"not null"`
}

func (Payment) TableName() string { return "payments" }
