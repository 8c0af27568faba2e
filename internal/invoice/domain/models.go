// Package domain contains the invoice aggregate.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kvoice/kvoice/internal/tax"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "Draft"
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusSent    InvoiceStatus = "Sent"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
)

// DateLayout is the wire format for issue and due dates.
const DateLayout = time.DateOnly

// LineItem is one line of an invoice. The id is a local identifier for
// list management only; the line total is always derived, never stored.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ClientSnapshot is the value copy of client fields captured at save
// time. Roster edits after saving never change it.
type ClientSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	MomoNumber  string `json:"momoNumber"`
	MomoNetwork string `json:"momoNetwork"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

// BusinessSnapshot is the value copy of the issuer profile captured at
// save time.
type BusinessSnapshot struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	LogoURL     string `json:"logoUrl"`
	TIN         string `json:"tin"`
	MomoNumber  string `json:"momoNumber"`
	MomoNetwork string `json:"momoNetwork"`
}

// Invoice is the central aggregate: snapshots, line items, levy flags
// and the derived totals, persisted as one row with embedded JSON
// documents.
type Invoice struct {
	ID            snowflake.ID  `json:"id" gorm:"primaryKey"`
	AccountID     string        `json:"-" gorm:"type:text;not null;index;uniqueIndex:idx_invoices_account_number"`
	InvoiceNumber string        `json:"invoiceNumber" gorm:"type:text;not null;uniqueIndex:idx_invoices_account_number"`
	Date          string        `json:"date" gorm:"type:text;not null"`
	DueDate       string        `json:"dueDate" gorm:"type:text"`
	Status        InvoiceStatus `json:"status" gorm:"type:text;not null;default:'Draft'"`
	Currency      string        `json:"currency" gorm:"type:text;not null"`

	VATEnabled       bool            `json:"vatEnabled" gorm:"not null;default:false"`
	LeviesEnabled    bool            `json:"leviesEnabled" gorm:"not null;default:false"`
	CovidLevyEnabled bool            `json:"covidLevyEnabled" gorm:"not null;default:false"`
	VATRate          decimal.Decimal `json:"vatRate" gorm:"type:numeric(6,2);not null"`

	Subtotal     decimal.Decimal `json:"subtotal" gorm:"type:numeric(18,4);not null"`
	VATAmount    decimal.Decimal `json:"vatAmount" gorm:"type:numeric(18,4);not null"`
	LeviesAmount decimal.Decimal `json:"leviesAmount" gorm:"type:numeric(18,4);not null"`
	CovidAmount  decimal.Decimal `json:"covidAmount" gorm:"type:numeric(18,4);not null"`
	Total        decimal.Decimal `json:"total" gorm:"type:numeric(18,4);not null"`

	Items        datatypes.JSONType[[]LineItem]       `json:"items"`
	Client       datatypes.JSONType[ClientSnapshot]   `json:"client"`
	BusinessInfo datatypes.JSONType[BusinessSnapshot] `json:"businessInfo"`

	CreatedAt int64 `json:"createdAt" gorm:"not null"`
	UpdatedAt int64 `json:"updatedAt" gorm:"not null"`
}

func (Invoice) TableName() string { return "invoices" }

// Lines converts the embedded items to engine input.
func (i Invoice) Lines() []tax.Line {
	items := i.Items.Data()
	lines := make([]tax.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, tax.Line{Quantity: item.Quantity, Price: item.Price})
	}
	return lines
}

// EffectiveStatus projects the stored status at read time: an unpaid
// non-draft invoice past its due date reads as Overdue. Overdue is
// never written by a controller transition.
func (i Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if i.Status != InvoiceStatusPending && i.Status != InvoiceStatusSent {
		return i.Status
	}
	due := i.DueDate
	if due == "" {
		due = i.Date
	}
	dueAt, err := time.Parse(DateLayout, due)
	if err != nil {
		return i.Status
	}
	if now.After(dueAt.AddDate(0, 0, 1)) {
		return InvoiceStatusOverdue
	}
	return i.Status
}
