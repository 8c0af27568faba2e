package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceNumber(t *testing.T) {
	issuedAt := time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC)

	out, err := InvoiceNumber(DefaultInvoiceNumberTemplate, "INV", issuedAt, 42)
	require.NoError(t, err)
	assert.Equal(t, "INV2025-042", out)
}

func TestInvoiceNumber_CustomTemplate(t *testing.T) {
	issuedAt := time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC)

	out, err := InvoiceNumber("{PREFIX}-{YY}{MM}-{SEQ}", "KV", issuedAt, 7)
	require.NoError(t, err)
	assert.Equal(t, "KV-2503-7", out)
}

func TestInvoiceNumber_Errors(t *testing.T) {
	now := time.Now()

	_, err := InvoiceNumber("", "INV", now, 1)
	assert.Error(t, err)

	_, err = InvoiceNumber("{PREFIX}{SEQ}", "INV", now, 0)
	assert.Error(t, err)

	_, err = InvoiceNumber("{PREFIX}{BOGUS}", "INV", now, 1)
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "GH₵ 1,210.00", Money("GHS", decimal.RequireFromString("1210")))
	assert.Equal(t, "USD 99.50", Money("USD", decimal.RequireFromString("99.5")))
}
