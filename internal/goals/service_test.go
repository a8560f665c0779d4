package goals

import (
	"context"
	"regexp"
	"testing"
	"time"

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

	cases := []models.Goal{
		{GoalName: "", TargetAmount: 1000},
		{GoalName: "car", TargetAmount: 0},
		{GoalName: "car", TargetAmount: 1000, CurrentSavings: -1},
	}
	for _, tc := range cases {
		g := tc
		_, err := svc.Add(ctx, 1, &g)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "input %+v should be rejected", tc)
	}
}

func TestAdd_Insert(t *testing.T) {
	svc, mock := newMockService(t)
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO goals`)).
		WithArgs(int64(1), "car", 5000.0, 250.0, due).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

	id, err := svc.Add(context.Background(), 1, &models.Goal{
		GoalName: "car", TargetAmount: 5000, CurrentSavings: 250, TargetDate: due,
	})
	require.NoError(t, err)
	require.Equal(t, int64(8), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ForeignRowIsNotFound(t *testing.T) {
	svc, mock := newMockService(t)
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET`)).
		WithArgs("car", 5000.0, 300.0, due, int64(8), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Update(context.Background(), 2, 8, &models.Goal{
		GoalName: "car", TargetAmount: 5000, CurrentSavings: 300, TargetDate: due,
	})
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM goals WHERE id = $1 AND user_id = $2`)).
		WithArgs(int64(8), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Delete(context.Background(), 1, 8))
	require.NoError(t, mock.ExpectationsWereMet())
}
