package reports

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewService(NewPostgresRepository(db)), mock
}

func TestReport_Validation(t *testing.T) {
	svc, _ := newMockService(t)
	ctx := context.Background()

	var ve *ValidationError
	_, err := svc.Report(ctx, 1, "weekly", 2024)
	require.ErrorAs(t, err, &ve)

	_, err = svc.Report(ctx, 1, TypeMonthly, 0)
	require.ErrorAs(t, err, &ve)
}

func TestReport_Monthly(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`to_char(transaction_date, 'YYYY-MM')`)).
		WithArgs(int64(1), 2024).
		WillReturnRows(sqlmock.NewRows([]string{"period", "income", "expenses"}).
			AddRow("2024-01", 1000.0, 400.0).
			AddRow("2024-02", 1000.0, 550.0))

	rows, err := svc.Report(context.Background(), 1, TypeMonthly, 2024)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2024-01", rows[0].Period)
	require.Equal(t, 550.0, rows[1].Expenses)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummary_BudgetStatus(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`EXTRACT(MONTH FROM transaction_date)`)).
		WithArgs(int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"income", "expenses"}).AddRow(500.0, 800.0))

	sum, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, -300.0, sum.Balance)
	require.Equal(t, "Over Budget", sum.BudgetStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthlySeries(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $2`)).
		WithArgs(int64(1), 6).
		WillReturnRows(sqlmock.NewRows([]string{"month", "income", "expenses"}).
			AddRow("Jan", 1000.0, 400.0).
			AddRow("Feb", 900.0, 700.0))

	rows, err := svc.MonthlySeries(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Feb", rows[1].Month)
	require.NoError(t, mock.ExpectationsWereMet())
}
