package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/kvoice/kvoice/internal/identity"
	"github.com/kvoice/kvoice/internal/profile/domain"
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
	require.NoError(t, db.AutoMigrate(&domain.Profile{}))

	return New(Params{DB: db, Log: zap.NewNop()})
}

func accountContext(accountID string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{AccountID: accountID})
}

func TestGet_MissingProfile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(accountContext("acct-1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsert_CreatesWithDefaultPreferences(t *testing.T) {
	svc := newTestService(t)
	ctx := accountContext("acct-1")

	profile, err := svc.Upsert(ctx, domain.UpsertProfileRequest{
		Name: "Adwoa Designs",
		TIN:  "C0001234567",
	})
	require.NoError(t, err)

	prefs := profile.Preferences.Data()
	assert.Equal(t, "GHS", prefs.DefaultCurrency)
	assert.Equal(t, "INV", prefs.InvoicePrefix)
	assert.True(t, prefs.DefaultTaxRate.Equal(decimal.NewFromInt(15)))
}

func TestUpsert_KeepsPreferencesWhenNotNamed(t *testing.T) {
	svc := newTestService(t)
	ctx := accountContext("acct-1")

	custom := domain.Preferences{
		DefaultCurrency: "USD",
		DefaultTaxRate:  decimal.NewFromInt(10),
		InvoicePrefix:   "AD",
	}
	_, err := svc.Upsert(ctx, domain.UpsertProfileRequest{
		Name:        "Adwoa Designs",
		Preferences: &custom,
	})
	require.NoError(t, err)

	updated, err := svc.Upsert(ctx, domain.UpsertProfileRequest{Name: "Adwoa Designs Ltd"})
	require.NoError(t, err)

	prefs := updated.Preferences.Data()
	assert.Equal(t, "USD", prefs.DefaultCurrency)
	assert.Equal(t, "AD", prefs.InvoicePrefix)
	assert.Equal(t, "Adwoa Designs Ltd", updated.Name)
}
