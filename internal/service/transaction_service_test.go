package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtbfolio/xtbfolio/internal/models"
	"github.com/xtbfolio/xtbfolio/internal/xe"
)

func sampleCreate(symbol string, openTime time.Time) TransactionCreate {
	return TransactionCreate{
		AccountID:     42,
		XtbID:         500100,
		Currency:      models.CurrencyUSD,
		Symbol:        symbol,
		Type:          models.TransactionTypeBuy,
		Volume:        10,
		OpenTime:      openTime,
		OpenPrice:     150.5,
		MarketPrice:   155,
		PurchaseValue: 1505,
		GrossPL:       45,
		Comment:       "initial buy",
	}
}

func TestAddAndGetTransaction(t *testing.T) {
	s := newTestTransactionService(t)
	ctx := context.Background()

	created, err := s.AddTransaction(ctx, sampleCreate("AAPL", day(2025, time.January, 1)))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	loaded, err := s.GetTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", loaded.Symbol)
	assert.Equal(t, models.TransactionTypeBuy, loaded.Type)
	assert.Equal(t, 150.5, loaded.OpenPrice)
}

func TestGetTransactionNotFound(t *testing.T) {
	s := newTestTransactionService(t)

	_, err := s.GetTransaction(context.Background(), 9999)
	assert.ErrorIs(t, err, xe.ErrTransactionNotFound)
}

func TestAddTransactionsBatch(t *testing.T) {
	s := newTestTransactionService(t)
	ctx := context.Background()

	saved, err := s.AddTransactions(ctx, []TransactionCreate{
		sampleCreate("AAPL", day(2025, time.January, 1)),
		sampleCreate("MSFT", day(2025, time.January, 2)),
		sampleCreate("CDR.PL", day(2025, time.January, 3)),
	})
	require.NoError(t, err)
	require.Len(t, saved, 3)
	for _, tx := range saved {
		assert.NotZero(t, tx.ID)
	}

	page, err := s.ListTransactions(ctx, TransactionQuery{GetAll: true})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
}

func TestListTransactionsDefaults(t *testing.T) {
	s := newTestTransactionService(t)
	ctx := context.Background()

	for d := 1; d <= 12; d++ {
		_, err := s.AddTransaction(ctx, sampleCreate("AAPL", day(2025, time.January, d)))
		require.NoError(t, err)
	}

	page, err := s.ListTransactions(ctx, TransactionQuery{})
	require.NoError(t, err)

	// Defaults: openTime descending, page of 10.
	assert.EqualValues(t, 12, page.Total)
	require.Len(t, page.Data, 10)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 0, page.Offset)
	for i := 1; i < len(page.Data); i++ {
		assert.False(t, page.Data[i-1].OpenTime.Before(page.Data[i].OpenTime))
	}
}

func TestListTransactionsSymbolFilter(t *testing.T) {
	s := newTestTransactionService(t)
	ctx := context.Background()

	_, err := s.AddTransaction(ctx, sampleCreate("AAPL", day(2025, time.January, 1)))
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, sampleCreate("MSFT", day(2025, time.January, 2)))
	require.NoError(t, err)

	page, err := s.ListTransactions(ctx, TransactionQuery{Symbol: "MSFT"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "MSFT", page.Data[0].Symbol)
}

func TestListTransactionsUnknownSortFieldFallsBack(t *testing.T) {
	s := newTestTransactionService(t)
	ctx := context.Background()

	_, err := s.AddTransaction(ctx, sampleCreate("AAPL", day(2025, time.January, 1)))
	require.NoError(t, err)

	// A hostile sortBy must not reach the SQL string.
	page, err := s.ListTransactions(ctx, TransactionQuery{SortBy: "id; DROP TABLE transactions"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestUpdateTransactionPartial(t *testing.T) {
	s := newTestTransactionService(t)
	ctx := context.Background()

	created, err := s.AddTransaction(ctx, sampleCreate("AAPL", day(2025, time.January, 1)))
	require.NoError(t, err)

	volume := 25.0
	comment := "adjusted"
	updated, err := s.UpdateTransaction(ctx, created.ID, TransactionUpdate{
		Volume:  &volume,
		Comment: &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, 25.0, updated.Volume)
	assert.Equal(t, "adjusted", updated.Comment)
	// Untouched fields survive.
	assert.Equal(t, "AAPL", updated.Symbol)
	assert.Equal(t, 150.5, updated.OpenPrice)
}

func TestUpdateTransactionNotFound(t *testing.T) {
	s := newTestTransactionService(t)

	volume := 1.0
	_, err := s.UpdateTransaction(context.Background(), 404, TransactionUpdate{Volume: &volume})
	assert.ErrorIs(t, err, xe.ErrTransactionNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	s := newTestTransactionService(t)
	ctx := context.Background()

	created, err := s.AddTransaction(ctx, sampleCreate("AAPL", day(2025, time.January, 1)))
	require.NoError(t, err)

	require.NoError(t, s.DeleteTransaction(ctx, created.ID))

	_, err = s.GetTransaction(ctx, created.ID)
	assert.ErrorIs(t, err, xe.ErrTransactionNotFound)

	assert.ErrorIs(t, s.DeleteTransaction(ctx, created.ID), xe.ErrTransactionNotFound)
}
