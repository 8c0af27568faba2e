package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kvoice/kvoice/internal/identity"
	"github.com/kvoice/kvoice/internal/payment/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Payment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{DB: db, Log: zap.NewNop(), GenID: node})
}

func accountContext(accountID string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{AccountID: accountID})
}

func TestRecord_Defaults(t *testing.T) {
	svc := newTestService(t)
	ctx := accountContext("acct-1")

	payment, err := svc.Record(ctx, domain.RecordPaymentRequest{
		InvoiceNumber: "INV2025-001",
		Amount:        decimal.NewFromInt(500),
		ClientName:    "Ama Mensah",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Equal(t, domain.DefaultMethod, payment.Method)
	assert.NotZero(t, payment.Date)
}

func TestRecord_RejectsNegativeAmount(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Record(accountContext("acct-1"), domain.RecordPaymentRequest{
		InvoiceNumber: "INV2025-001",
		Amount:        decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := accountContext("acct-1")

	payment, err := svc.Record(ctx, domain.RecordPaymentRequest{
		InvoiceNumber: "INV2025-001",
		Amount:        decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	verified, err := svc.UpdateStatus(ctx, payment.ID.String(), domain.PaymentStatusVerified)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusVerified, verified.Status)

	_, err = svc.UpdateStatus(ctx, payment.ID.String(), domain.PaymentStatus("Bogus"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListByClient(t *testing.T) {
	svc := newTestService(t)
	ctx := accountContext("acct-1")

	for _, name := range []string{"Ama Mensah", "Kofi Boateng", "Ama Mensah"} {
		_, err := svc.Record(ctx, domain.RecordPaymentRequest{
			InvoiceNumber: "INV2025-001",
			Amount:        decimal.NewFromInt(100),
			ClientName:    name,
		})
		require.NoError(t, err)
	}

	payments, err := svc.ListByClient(ctx, "Ama Mensah")
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestDelete_ScopedToAccount(t *testing.T) {
	svc := newTestService(t)

	payment, err := svc.Record(accountContext("acct-1"), domain.RecordPaymentRequest{
		InvoiceNumber: "INV2025-001",
		Amount:        decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	err = svc.Delete(accountContext("acct-2"), payment.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(accountContext("acct-1"), payment.ID.String()))
}
