// Package pdf renders saved invoices as PDF documents.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/kvoice/kvoice/internal/invoice/domain"
	"github.com/kvoice/kvoice/internal/invoice/format"
	"github.com/shopspring/decimal"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the PDF for a saved invoice. All amounts come from
// the stored totals; nothing is recomputed here.
func (r *Renderer) Render(_ context.Context, invoice domain.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	business := invoice.BusinessInfo.Data()
	client := invoice.Client.Data()
	money := func(amount decimal.Decimal) string {
		return format.Money(invoice.Currency, amount)
	}

	m.AddRow(10,
		text.NewCol(12, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New("Invoice number: "+invoice.InvoiceNumber, props.Text{Top: 0}),
			text.New("Date of issue: "+invoice.Date, props.Text{Top: 4}),
			text.New("Date due: "+invoice.DueDate, props.Text{Top: 8}),
		),
		col.New(6),
	)

	m.AddRow(40,
		col.New(6).Add(
			text.New(business.Name, props.Text{Style: fontstyle.Bold}),
			text.New(business.Address, props.Text{Top: 5}),
			text.New(business.Email, props.Text{Top: 14}),
			text.New(tinLine(business.TIN), props.Text{Top: 19}),
			text.New(momoLine(business.MomoNetwork, business.MomoNumber), props.Text{Top: 24}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(client.Name, props.Text{Top: 5}),
			text.New(client.Location, props.Text{Top: 9}),
			text.New(client.Email, props.Text{Top: 14}),
			text.New(momoLine(client.MomoNetwork, client.MomoNumber), props.Text{Top: 19}),
		),
	)

	m.AddRow(15,
		text.NewCol(12, money(invoice.Total)+" due "+invoice.DueDate, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   5,
		}),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range invoice.Items.Data() {
		amount := item.Price.Mul(decimal.NewFromInt(item.Quantity))
		m.AddRow(12,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.Price), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(amount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	totalRow := func(label, value string, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		m.AddRow(8,
			col.New(6),
			text.NewCol(4, label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	totalRow("Subtotal", money(invoice.Subtotal), false)
	if invoice.VATEnabled {
		totalRow(fmt.Sprintf("VAT (%s%%)", invoice.VATRate.String()), money(invoice.VATAmount), false)
	}
	if invoice.LeviesEnabled {
		totalRow("NHIL & GETFund (5%)", money(invoice.LeviesAmount), false)
	}
	if invoice.CovidLevyEnabled {
		totalRow("COVID-19 Levy (1%)", money(invoice.CovidAmount), false)
	}
	totalRow("Total", money(invoice.Total), true)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return doc.GetBytes(), nil
}

func momoLine(network, number string) string {
	if strings.TrimSpace(number) == "" {
		return ""
	}
	if strings.TrimSpace(network) == "" {
		return "MoMo: " + number
	}
	return "MoMo: " + number + " (" + network + ")"
}

func tinLine(tin string) string {
	if strings.TrimSpace(tin) == "" {
		return ""
	}
	return "TIN: " + tin
}
