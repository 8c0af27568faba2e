package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	csvexport "github.com/kvoice/kvoice/internal/export/csv"
	invoicedomain "github.com/kvoice/kvoice/internal/invoice/domain"
)

// invoiceView is the wire shape of an invoice. Status carries the
// read-time Overdue projection.
type invoiceView struct {
	invoicedomain.Invoice
	Status invoicedomain.InvoiceStatus `json:"status"`
}

func viewOf(inv invoicedomain.Invoice, now time.Time) invoiceView {
	return invoiceView{Invoice: inv, Status: inv.EffectiveStatus(now)}
}

func viewsOf(invoices []invoicedomain.Invoice, now time.Time) []invoiceView {
	views := make([]invoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, viewOf(inv, now))
	}
	return views
}

func (s *Server) ListInvoices(c *gin.Context) {
	invoices, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": viewsOf(invoices, time.Now().UTC())})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	inv, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": viewOf(inv, time.Now().UTC())})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": viewOf(inv, time.Now().UTC())})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoicedomain.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	inv, err := s.invoiceSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": viewOf(inv, time.Now().UTC())})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) MarkInvoicePaid(c *gin.Context) {
	inv, err := s.invoiceSvc.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": viewOf(inv, time.Now().UTC())})
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdf.Render(c.Request.Context(), inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := strings.ReplaceAll(inv.InvoiceNumber, "/", "-") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (s *Server) ExportInvoicesCSV(c *gin.Context) {
	invoices, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out, err := csvexport.Invoices(invoices, time.Now().UTC())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoices.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}
