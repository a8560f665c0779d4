package budgets

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewService(NewPostgresRepository(db)), mock
}

func TestAdd_Validation(t *testing.T) {
	svc, _ := newMockService(t)
	ctx := context.Background()

	cases := []models.Budget{
		{Category: "", Amount: 100, Month: 5, Year: 2024},
		{Category: "food", Amount: 0, Month: 5, Year: 2024},
		{Category: "food", Amount: 100, Month: 0, Year: 2024},
		{Category: "food", Amount: 100, Month: 13, Year: 2024},
		{Category: "food", Amount: 100, Month: 5, Year: 0},
	}
	for _, tc := range cases {
		b := tc
		_, err := svc.Add(ctx, 1, &b)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "input %+v should be rejected", tc)
	}
}

func TestAdd_Insert(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO budgets`)).
		WithArgs(int64(1), "food", 300.0, 5, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	id, err := svc.Add(context.Background(), 1, &models.Budget{Category: "food", Amount: 300, Month: 5, Year: 2024})
	require.NoError(t, err)
	require.Equal(t, int64(3), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_PeriodFilter(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`AND month = $2 AND year = $3`)).
		WithArgs(int64(1), 5, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "amount", "month", "year", "created_at"}))

	got, err := svc.List(context.Background(), 1, 5, 2024)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_MonthOnlyFilter(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`AND month = $2 ORDER BY`)).
		WithArgs(int64(1), 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "amount", "month", "year", "created_at"}))

	_, err := svc.List(context.Background(), 1, 5, 0)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_YearOnlyFilter(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`AND year = $2 ORDER BY`)).
		WithArgs(int64(1), 2024).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "amount", "month", "year", "created_at"}))

	_, err := svc.List(context.Background(), 1, 0, 2024)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
