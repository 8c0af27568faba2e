package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	csvexport "github.com/kvoice/kvoice/internal/export/csv"
	paymentdomain "github.com/kvoice/kvoice/internal/payment/domain"
)

func (s *Server) ListPayments(c *gin.Context) {
	clientName := strings.TrimSpace(c.Query("client"))

	var (
		payments []paymentdomain.Payment
		err      error
	)
	if clientName != "" {
		payments, err = s.paymentSvc.ListByClient(c.Request.Context(), clientName)
	} else {
		payments, err = s.paymentSvc.List(c.Request.Context())
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func (s *Server) RecordPayment(c *gin.Context) {
	var req paymentdomain.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	payment, err := s.paymentSvc.Record(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": payment})
}

func (s *Server) UpdatePaymentStatus(c *gin.Context) {
	var req struct {
		Status paymentdomain.PaymentStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	payment, err := s.paymentSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payment})
}

func (s *Server) DeletePayment(c *gin.Context) {
	if err := s.paymentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ExportPaymentsCSV(c *gin.Context) {
	payments, err := s.paymentSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out, err := csvexport.Payments(payments)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payments.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}
