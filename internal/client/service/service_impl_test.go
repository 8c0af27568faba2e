package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kvoice/kvoice/internal/client/domain"
	"github.com/kvoice/kvoice/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Client{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{DB: db, Log: zap.NewNop(), GenID: node})
}

func accountContext(accountID string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{AccountID: accountID})
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := accountContext("acct-1")

	created, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:        "  Ama Mensah  ",
		MomoNumber:  "0241234567",
		MomoNetwork: domain.NetworkMTN,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ama Mensah", created.Name)
	assert.Equal(t, domain.ClientStatusActive, created.Status)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreate_RequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(accountContext("acct-1"), domain.CreateClientRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestResolveForInvoice_SentinelCreatesRosterEntry(t *testing.T) {
	svc := newTestService(t)
	ctx := accountContext("acct-1")

	client, err := svc.ResolveForInvoice(ctx, domain.ResolveClientRequest{
		ID:   domain.NewClientID,
		Name: "Kofi Boateng",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, client.InvoicesCount)

	clients, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestResolveForInvoice_ExistingBumpsCount(t *testing.T) {
	svc := newTestService(t)
	ctx := accountContext("acct-1")

	created, err := svc.Create(ctx, domain.CreateClientRequest{Name: "Kofi Boateng"})
	require.NoError(t, err)

	resolved, err := svc.ResolveForInvoice(ctx, domain.ResolveClientRequest{
		ID:   created.ID.String(),
		Name: "Kofi Boateng",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
	assert.EqualValues(t, 1, resolved.InvoicesCount)

	again, err := svc.ResolveForInvoice(ctx, domain.ResolveClientRequest{
		ID:   created.ID.String(),
		Name: "Kofi Boateng",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, again.InvoicesCount)
}

func TestRosterScopedToAccount(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(accountContext("acct-1"), domain.CreateClientRequest{Name: "Ama Mensah"})
	require.NoError(t, err)

	_, err = svc.GetByID(accountContext("acct-2"), created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	clients, err := svc.List(accountContext("acct-2"))
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestUpdate_PatchSemantics(t *testing.T) {
	svc := newTestService(t)
	ctx := accountContext("acct-1")

	created, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:     "Ama Mensah",
		Location: "Accra",
	})
	require.NoError(t, err)

	email := "ama@example.com"
	updated, err := svc.Update(ctx, created.ID.String(), domain.UpdateClientRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", updated.Email)
	assert.Equal(t, "Accra", updated.Location, "unnamed fields keep their value")
}
