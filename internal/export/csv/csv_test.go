package csv

import (
	"strings"
	"testing"
	"time"

	invoicedomain "github.com/kvoice/kvoice/internal/invoice/domain"
	paymentdomain "github.com/kvoice/kvoice/internal/payment/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestInvoices_ProjectsOverdue(t *testing.T) {
	inv := invoicedomain.Invoice{
		InvoiceNumber: "INV2025-001",
		Date:          "2025-01-01",
		DueDate:       "2025-01-15",
		Status:        invoicedomain.InvoiceStatusPending,
		Currency:      "GHS",
		Subtotal:      decimal.NewFromInt(1000),
		VATAmount:     decimal.NewFromInt(150),
		LeviesAmount:  decimal.NewFromInt(50),
		CovidAmount:   decimal.NewFromInt(10),
		Total:         decimal.NewFromInt(1210),
		Client:        datatypes.NewJSONType(invoicedomain.ClientSnapshot{Name: "Ama Mensah"}),
	}

	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	out, err := Invoices([]invoicedomain.Invoice{inv}, now)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "invoice_number,date,due_date,status,client,currency,subtotal,vat,levies,covid_levy,total", lines[0])
	assert.Equal(t, "INV2025-001,2025-01-01,2025-01-15,Overdue,Ama Mensah,GHS,1000.00,150.00,50.00,10.00,1210.00", lines[1])
}

func TestPayments(t *testing.T) {
	p := paymentdomain.Payment{
		InvoiceNumber: "INV2025-001",
		Date:          time.Date(2025, time.February, 2, 10, 0, 0, 0, time.UTC).UnixMilli(),
		ClientName:    "Ama Mensah",
		Method:        paymentdomain.DefaultMethod,
		Status:        paymentdomain.PaymentStatusVerified,
		Amount:        decimal.NewFromInt(1210),
	}

	out, err := Payments([]paymentdomain.Payment{p})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "INV2025-001,2025-02-02,Ama Mensah,Cash/Other,,Verified,1210.00", lines[1])
}
