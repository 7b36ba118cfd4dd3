package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestStoreRepository_Cart(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()
	repo := NewStoreRepository(database)

	t.Run("get cart computes line totals", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "product_id", "name", "price_cents", "quantity"}).
			AddRow(1, 4, "Chew toy", 899, 2).
			AddRow(2, 9, "Cat litter 10kg", 1599, 1)
		mock.ExpectQuery(`SELECT ci.id, ci.product_id, p.name`).
			WithArgs(12).
			WillReturnRows(rows)

		items, err := repo.GetCart(12)
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.Equal(t, 1798, items[0].LineTotalCents)
		require.Equal(t, 1599, items[1].LineTotalCents)
	})

	t.Run("clear cart removes every row for the user", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1`).
			WithArgs(12).
			WillReturnResult(sqlmock.NewResult(0, 3))

		require.NoError(t, repo.ClearCart(12))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
