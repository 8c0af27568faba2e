// Package domain contains the client roster models.
package domain

import "github.com/bwmarrin/snowflake"

// ClientStatus tags a roster entry.
type ClientStatus string

const (
	ClientStatusActive  ClientStatus = "Active"
	ClientStatusPending ClientStatus = "Pending"
)

// Supported mobile-money networks.
const (
	NetworkMTN     = "MTN"
	NetworkTelecel = "Telecel"
	NetworkAT      = "AT"
)

// NewClientID is the sentinel id an invoice carries when it names a
// client that is not in the roster yet.
const NewClientID = "new"

// Client is a billing counterparty. Invoices snapshot client fields at
// save time rather than referencing roster rows, so roster edits never
// alter saved invoices.
type Client struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID     string       `json:"-" gorm:"type:text;not null;index"`
	Name          string       `json:"name" gorm:"type:text;not null"`
	Email         string       `json:"email" gorm:"type:text"`
	MomoNumber    string       `json:"momoNumber" gorm:"type:text"`
	MomoNetwork   string       `json:"momoNetwork" gorm:"type:text"`
	Location      string       `json:"location" gorm:"type:text"`
	InvoicesCount int64        `json:"invoicesCount" gorm:"not null;default:0"`
	Status        ClientStatus `json:"status" gorm:"type:text;not null;default:'Active'"`
	CreatedAt     int64        `json:"createdAt" gorm:"not null"`
	UpdatedAt     int64        `json:"updatedAt" gorm:"not null"`
}

func (Client) TableName() string { return "clients" }
