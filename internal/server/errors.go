package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/kvoice/kvoice/internal/client/domain"
	invoicedomain "github.com/kvoice/kvoice/internal/invoice/domain"
	paymentdomain "github.com/kvoice/kvoice/internal/payment/domain"
	profiledomain "github.com/kvoice/kvoice/internal/profile/domain"
	"github.com/kvoice/kvoice/internal/tax"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrUnauthorized = errors.New("unauthorized")

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func mapError(err error) (int, errorPayload) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if field, code, ok := validationDetail(err); ok {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: field, Code: code, Message: "validation error"},
			},
		}
	}

	switch {
	// The quota lockout is not a validation failure: the request was
	// well formed and the caller must upgrade, not retry.
	case errors.Is(err, invoicedomain.ErrQuotaExhausted):
		return http.StatusForbidden, errorPayload{
			Type:    "quota_exhausted",
			Message: "guest invoice allowance exhausted",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, invoicedomain.ErrInvalidAccount),
		errors.Is(err, clientdomain.ErrInvalidAccount),
		errors.Is(err, paymentdomain.ErrInvalidAccount),
		errors.Is(err, profiledomain.ErrInvalidAccount):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, invoicedomain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "invoice number already in use",
		}
	case errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, profiledomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func validationDetail(err error) (field, code string, ok bool) {
	switch {
	case errors.Is(err, invoicedomain.ErrMissingClientName):
		return "client.name", "missing_client_name", true
	case errors.Is(err, invoicedomain.ErrMissingItemDescription):
		return "items.description", "missing_item_description", true
	case errors.Is(err, tax.ErrNegativeQuantity):
		return "items.quantity", "negative_quantity", true
	case errors.Is(err, tax.ErrNegativePrice):
		return "items.price", "negative_price", true
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, clientdomain.ErrInvalidID),
		errors.Is(err, paymentdomain.ErrInvalidID):
		return "id", "invalid_id", true
	case errors.Is(err, clientdomain.ErrInvalidName):
		return "name", "invalid_name", true
	case errors.Is(err, paymentdomain.ErrInvalidAmount):
		return "amount", "invalid_amount", true
	case errors.Is(err, paymentdomain.ErrInvalidStatus):
		return "status", "invalid_status", true
	default:
		return "", "", false
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}
