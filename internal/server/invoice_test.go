package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	clientdomain "github.com/kvoice/kvoice/internal/client/domain"
	clientservice "github.com/kvoice/kvoice/internal/client/service"
	"github.com/kvoice/kvoice/internal/config"
	"github.com/kvoice/kvoice/internal/export/pdf"
	invoicedomain "github.com/kvoice/kvoice/internal/invoice/domain"
	invoiceservice "github.com/kvoice/kvoice/internal/invoice/service"
	paymentdomain "github.com/kvoice/kvoice/internal/payment/domain"
	paymentservice "github.com/kvoice/kvoice/internal/payment/service"
	profiledomain "github.com/kvoice/kvoice/internal/profile/domain"
	profileservice "github.com/kvoice/kvoice/internal/profile/service"
	"github.com/kvoice/kvoice/internal/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&invoicedomain.Invoice{},
		&clientdomain.Client{},
		&paymentdomain.Payment{},
		&profiledomain.Profile{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	gate := quota.NewGate(quota.NewMemoryStore(), quota.DefaultLimit, log)

	clients := clientservice.New(clientservice.Params{DB: db, Log: log, GenID: node})
	profiles := profileservice.New(profileservice.Params{DB: db, Log: log})
	payments := paymentservice.New(paymentservice.Params{DB: db, Log: log, GenID: node})
	invoices := invoiceservice.New(invoiceservice.Params{
		DB: db, Log: log, GenID: node,
		Gate: gate, Clients: clients, Profiles: profiles,
	})

	engine := NewEngine(log)
	NewServer(ServerParams{
		Gin:        engine,
		Cfg:        config.Config{},
		InvoiceSvc: invoices,
		ClientSvc:  clients,
		PaymentSvc: payments,
		ProfileSvc: profiles,
		Gate:       gate,
		PDF:        pdf.NewRenderer(),
	})

	return engine
}

func doRequest(engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func memberHeaders() map[string]string {
	return map[string]string{HeaderAccount: "acct-1"}
}

func guestHeaders() map[string]string {
	return map[string]string{HeaderAccount: "guest-1", HeaderGuest: "true"}
}

func invoiceBody() map[string]any {
	return map[string]any{
		"date":             "2025-03-09",
		"dueDate":          "2025-04-09",
		"vatEnabled":       true,
		"leviesEnabled":    true,
		"covidLevyEnabled": true,
		"items": []map[string]any{
			{"id": "1", "description": "Consulting", "quantity": 10, "price": "100"},
		},
		"client": map[string]any{"id": "new", "name": "Ama Mensah"},
	}
}

func TestIdentityRequired(t *testing.T) {
	engine := newTestServer(t)

	rec := doRequest(engine, http.MethodGet, "/api/v1/invoices", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	engine := newTestServer(t)

	rec := doRequest(engine, http.MethodPost, "/api/v1/invoices", invoiceBody(), memberHeaders())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			InvoiceNumber string `json:"invoiceNumber"`
			Status        string `json:"status"`
			Total         string `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Pending", resp.Data.Status)
	assert.Equal(t, "1210", resp.Data.Total)
	assert.NotEmpty(t, resp.Data.InvoiceNumber)
}

func TestCreateInvoiceValidationPayload(t *testing.T) {
	engine := newTestServer(t)

	body := invoiceBody()
	body["client"] = map[string]any{"id": "new", "name": ""}

	rec := doRequest(engine, http.MethodPost, "/api/v1/invoices", body, memberHeaders())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "missing_client_name", resp.Error.Errors[0].Code)
}

func TestGuestLockoutPayloadDistinctFromValidation(t *testing.T) {
	engine := newTestServer(t)

	for i := 0; i < quota.DefaultLimit; i++ {
		rec := doRequest(engine, http.MethodPost, "/api/v1/invoices", invoiceBody(), guestHeaders())
		require.Equal(t, http.StatusCreated, rec.Code, "creation %d within allowance", i)
	}

	rec := doRequest(engine, http.MethodPost, "/api/v1/invoices", invoiceBody(), guestHeaders())
	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "quota_exhausted", resp.Error.Type)
}

func TestQuotaEndpoint(t *testing.T) {
	engine := newTestServer(t)

	rec := doRequest(engine, http.MethodGet, "/api/v1/quota", nil, guestHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Guest     bool `json:"guest"`
		Limit     int  `json:"limit"`
		Remaining int  `json:"remaining"`
		Exhausted bool `json:"exhausted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Guest)
	assert.Equal(t, quota.DefaultLimit, resp.Limit)
	assert.Equal(t, quota.DefaultLimit, resp.Remaining)
	assert.False(t, resp.Exhausted)
}

func TestMarkPaidEndpoint(t *testing.T) {
	engine := newTestServer(t)

	rec := doRequest(engine, http.MethodPost, "/api/v1/invoices", invoiceBody(), memberHeaders())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(engine, http.MethodPost, "/api/v1/invoices/"+created.Data.ID+"/pay", nil, memberHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(engine, http.MethodGet, "/api/v1/payments", nil, memberHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	var payments struct {
		Data []struct {
			Amount string `json:"amount"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payments))
	require.Len(t, payments.Data, 1)
	assert.Equal(t, "1210", payments.Data[0].Amount)
	assert.Equal(t, "Verified", payments.Data[0].Status)
}
