// Package csv flattens invoices and payments into spreadsheet rows.
package csv

import (
	"bytes"
	"encoding/csv"
	"time"

	invoicedomain "github.com/kvoice/kvoice/internal/invoice/domain"
	paymentdomain "github.com/kvoice/kvoice/internal/payment/domain"
)

var invoiceHeader = []string{
	"invoice_number", "date", "due_date", "status", "client",
	"currency", "subtotal", "vat", "levies", "covid_levy", "total",
}

var paymentHeader = []string{
	"invoice_number", "date", "client", "method", "reference", "status", "amount",
}

// Invoices renders one row per invoice. The status column carries the
// read-time projection, so unpaid invoices past due export as Overdue.
func Invoices(invoices []invoicedomain.Invoice, now time.Time) ([]byte, error) {
	rows := make([][]string, 0, len(invoices)+1)
	rows = append(rows, invoiceHeader)
	for _, inv := range invoices {
		rows = append(rows, []string{
			inv.InvoiceNumber,
			inv.Date,
			inv.DueDate,
			string(inv.EffectiveStatus(now)),
			inv.Client.Data().Name,
			inv.Currency,
			inv.Subtotal.StringFixed(2),
			inv.VATAmount.StringFixed(2),
			inv.LeviesAmount.StringFixed(2),
			inv.CovidAmount.StringFixed(2),
			inv.Total.StringFixed(2),
		})
	}
	return write(rows)
}

// Payments renders one row per receipt.
func Payments(payments []paymentdomain.Payment) ([]byte, error) {
	rows := make([][]string, 0, len(payments)+1)
	rows = append(rows, paymentHeader)
	for _, p := range payments {
		rows = append(rows, []string{
			p.InvoiceNumber,
			time.UnixMilli(p.Date).UTC().Format(time.DateOnly),
			p.ClientName,
			p.Method,
			p.Reference,
			string(p.Status),
			p.Amount.StringFixed(2),
		})
	}
	return write(rows)
}

func write(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
