package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "user_id", "initiator_name", "receiver_name", "amount", "transaction_type", "funds_flow", "currency", "created_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepository_FetchPage(t *testing.T) {
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	mock := newMock(t)
	mock.ExpectQuery(SelectTransactionsPage).WithArgs(uint64(3), 10, 20).WillReturnRows(
		pgxmock.NewRows(columns).
			AddRow(uint64(2), uint64(3), "Ann", "Shop", "12.30", "purchase", int16(0), "CAD", at).
			AddRow(uint64(1), uint64(3), "Bob", "Ann", "5.00", "p2p", int16(1), "CAD", at.Add(-time.Hour)))

	ts, err := NewRepository(mock).FetchPage(context.Background(), 3, 3, 10)

	require.NoError(t, err)
	require.Len(t, ts, 2)
	assert.Equal(t, "sending", ts[0].Direction())
	assert.Equal(t, "receiving", ts[1].Direction())
	assert.Equal(t, "12.30", ts[0].Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchRange(t *testing.T) {
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	t.Run("empty", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(SelectTransactionsRange).WithArgs(uint64(3), from, to).
			WillReturnRows(pgxmock.NewRows(columns))

		ts, err := NewRepository(mock).FetchRange(context.Background(), 3, from, to)

		require.NoError(t, err)
		assert.Empty(t, ts)
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(SelectTransactionsRange).WithArgs(uint64(3), from, to).
			WillReturnError(errors.New("timeout"))

		_, err := NewRepository(mock).FetchRange(context.Background(), 3, from, to)

		assert.Error(t, err)
	})
}
