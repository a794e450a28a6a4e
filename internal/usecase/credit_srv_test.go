package usecase

import (
	"context"
	"testing"

	"fitbook/internal/data/entity"
	"fitbook/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCredits(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, 0)
	svc := NewCreditService(newFakeRepository(store), nil, testLogger())

	balance, err := svc.AddCredits(context.Background(), account.ID, 20, "purchased", "pay_123")
	require.NoError(t, err)
	assert.Equal(t, 20, balance)

	entries := auditEntries(store, account.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditActionPurchase, entries[0].Action)
	assert.Equal(t, 0, entries[0].CreditsBefore)
	assert.Equal(t, 20, entries[0].CreditsAfter)
	assert.Equal(t, 20, entries[0].CreditsChanged)
	assert.Equal(t, "purchased", entries[0].Metadata["source"])
	assert.Equal(t, "pay_123", entries[0].Metadata["payment_reference"])
}

func TestAddCreditsSingleGrantSingleEntry(t *testing.T) {
	// A grant of 22 credits is one ledger event, even when the amount
	// spans package plus bonus on the payment side.
	store := newFakeStore()
	account := seedAccount(store, 0)
	svc := NewCreditService(newFakeRepository(store), nil, testLogger())

	balance, err := svc.AddCredits(context.Background(), account.ID, 22, "purchased", "pay_456")
	require.NoError(t, err)
	assert.Equal(t, 22, balance)
	assert.Len(t, auditEntries(store, account.ID), 1)
}

func TestAddCreditsRejectsNonPositiveAmount(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, 10)
	svc := NewCreditService(newFakeRepository(store), nil, testLogger())

	_, err := svc.AddCredits(context.Background(), account.ID, 0, "purchased", "")
	require.Error(t, err)

	_, err = svc.AddCredits(context.Background(), account.ID, -5, "purchased", "")
	require.Error(t, err)

	assert.Empty(t, auditEntries(store, account.ID))
	assert.Equal(t, 10, store.accounts[account.ID].Credits)
}

func TestAddCreditsManualSource(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, 0)
	svc := NewCreditService(newFakeRepository(store), nil, testLogger())

	_, err := svc.AddCredits(context.Background(), account.ID, 5, "manual", "")
	require.NoError(t, err)

	entries := auditEntries(store, account.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditActionManualAdjustment, entries[0].Action)
}

func TestAddCreditsUnknownAccount(t *testing.T) {
	store := newFakeStore()
	svc := NewCreditService(newFakeRepository(store), nil, testLogger())

	_, err := svc.AddCredits(context.Background(), uuid.New(), 10, "purchased", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetActiveCredits(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, 17)
	svc := NewCreditService(newFakeRepository(store), nil, testLogger())

	balance, err := svc.GetActiveCredits(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, balance)

	_, err = svc.GetActiveCredits(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBreakdown(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, 0)
	svc := NewCreditService(newFakeRepository(store), nil, testLogger())
	ctx := context.Background()

	_, err := svc.AddCredits(ctx, account.ID, 20, "purchased", "")
	require.NoError(t, err)
	_, err = svc.AddCredits(ctx, account.ID, 3, "bonus", "")
	require.NoError(t, err)
	_, err = svc.AddCredits(ctx, account.ID, 2, "promotional", "")
	require.NoError(t, err)

	breakdown, err := svc.GetBreakdown(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, breakdown.Purchased)
	assert.Equal(t, 3, breakdown.Bonus)
	assert.Equal(t, 2, breakdown.Promotional)
	// Credits never expire.
	assert.Equal(t, 0, breakdown.ExpiringSoon)
}

func TestGetBreakdownUnchangedByRefund(t *testing.T) {
	// A cancelled booking returns credits through a booking_refund entry,
	// which carries no source. The breakdown only counts acquisitions, so
	// the purchased bucket must still match what was ever bought.
	store := newFakeStore()
	account := seedAccount(store, 0)
	class := seedClass(store, 2, 10)
	repo := newFakeRepository(store)
	credits := NewCreditService(repo, nil, testLogger())
	bookings := NewBookingService(repo, nil, nil, testLogger())
	ctx := context.Background()

	_, err := credits.AddCredits(ctx, account.ID, 20, "purchased", "")
	require.NoError(t, err)

	result, err := bookings.AttemptBooking(ctx, account.ID, class.ID)
	require.NoError(t, err)
	require.NoError(t, bookings.CancelBooking(ctx, uuid.MustParse(result.Booking.ID)))
	require.Equal(t, 20, store.accounts[account.ID].Credits)

	breakdown, err := credits.GetBreakdown(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, breakdown.Purchased)
	assert.Equal(t, 0, breakdown.Bonus)
	assert.Equal(t, 0, breakdown.Promotional)
}

func TestGetHistoryPagination(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, 0)
	svc := NewCreditService(newFakeRepository(store), nil, testLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.AddCredits(ctx, account.ID, 1, "purchased", "")
		require.NoError(t, err)
	}

	page, err := svc.GetHistory(ctx, account.ID, &request.PaginatedRequest{Page: 1, PerPage: 3})
	require.NoError(t, err)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, int64(5), page.Pagination.Total)

	page2, err := svc.GetHistory(ctx, account.ID, &request.PaginatedRequest{Page: 2, PerPage: 3})
	require.NoError(t, err)
	assert.Len(t, page2.Data, 2)
}

func TestReconcile(t *testing.T) {
	store := newFakeStore()
	account := seedAccount(store, 0)
	svc := NewCreditService(newFakeRepository(store), nil, testLogger())
	ctx := context.Background()

	_, err := svc.AddCredits(ctx, account.ID, 12, "purchased", "")
	require.NoError(t, err)

	result, err := svc.Reconcile(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, result.Consistent)
	assert.Equal(t, 12, result.Credits)
	assert.Equal(t, 12, result.LedgerTotal)

	// Tamper with the materialized balance behind the ledger's back.
	store.accounts[account.ID].Credits = 99

	result, err = svc.Reconcile(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, result.Consistent)
	assert.Equal(t, 99, result.Credits)
	assert.Equal(t, 12, result.LedgerTotal)
}
