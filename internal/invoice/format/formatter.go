// Package format renders invoice numbers and display amounts. It is a
// presentation layer: nothing here feeds back into computation.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

const DefaultInvoiceNumberTemplate = "{PREFIX}{YYYY}-{SEQ3}"

// InvoiceNumber formats a human-readable invoice number from a
// template, the account prefix, the issue time, and a monotonic
// sequence.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic
func InvoiceNumber(template, prefix string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}

	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template

	out = strings.ReplaceAll(out, "{PREFIX}", prefix)

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	// Simple sequence
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	// Padded sequence
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m // should never happen
		}

		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}

		return fmt.Sprintf("%0*d", width, seq)
	})

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice format: %s", out)
	}

	return out, nil
}

var printer = message.NewPrinter(language.English)

// Money renders an amount with its currency symbol and locale
// grouping, e.g. "GH₵ 1,210.00".
func Money(currency string, amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return printer.Sprintf("%s %v",
		CurrencySymbol(currency),
		number.Decimal(value,
			number.MinFractionDigits(2),
			number.MaxFractionDigits(2),
		),
	)
}

// CurrencySymbol maps a currency code to its display symbol.
func CurrencySymbol(currency string) string {
	if strings.EqualFold(currency, "GHS") {
		return "GH₵"
	}
	return currency
}
