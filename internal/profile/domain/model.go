// Package domain contains the business profile model.
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Preferences are account-level invoicing defaults.
type Preferences struct {
	DefaultCurrency string          `json:"defaultCurrency"`
	DefaultTaxRate  decimal.Decimal `json:"defaultTaxRate"`
	InvoicePrefix   string          `json:"invoicePrefix"`
	AutoSave        bool            `json:"autoSave"`
}

// DefaultPreferences returns the preferences applied to accounts that
// have not configured their own.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultCurrency: "GHS",
		DefaultTaxRate:  decimal.NewFromInt(15),
		InvoicePrefix:   "INV",
		AutoSave:        true,
	}
}

// Profile is the issuer identity stamped onto invoices. One per
// account, mutated only through account settings.
type Profile struct {
	AccountID   string                             `json:"accountId" gorm:"primaryKey;type:text"`
	Name        string                             `json:"name" gorm:"type:text;not null"`
	Email       string                             `json:"email" gorm:"type:text"`
	Address     string                             `json:"address" gorm:"type:text"`
	LogoURL     string                             `json:"logoUrl" gorm:"type:text"`
	TIN         string                             `json:"tin" gorm:"type:text"`
	MomoNumber  string                             `json:"momoNumber" gorm:"type:text"`
	MomoNetwork string                             `json:"momoNetwork" gorm:"type:text"`
	Preferences datatypes.JSONType[Preferences]    `json:"preferences"`
	CreatedAt   int64                              `json:"createdAt" gorm:"not null"`
	UpdatedAt   int64                              `json:"updatedAt" gorm:"not null"`
}

func (Profile) TableName() string { return "profiles" }
