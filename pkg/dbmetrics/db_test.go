package dbmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConflictService/pkg/metrics"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, c.Write(&out))
	return out.GetCounter().GetValue()
}

func TestDB_ObservesErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	m := metrics.NewWithRegisterer("conflicts", prometheus.NewRegistry())
	stop := make(chan struct{})
	defer close(stop)
	db := WrapWithDefault(sqlDB, m, "conflicts", stop)

	mock.ExpectQuery("SELECT broken").WillReturnError(errors.New("syntax error"))
	mock.ExpectQuery("SELECT ok").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	_, err = db.QueryContext(context.Background(), "SELECT broken")
	require.Error(t, err)

	rows, err := db.QueryContext(context.Background(), "SELECT ok")
	require.NoError(t, err)
	require.NoError(t, rows.Close())

	assert.Equal(t, 1.0, counterValue(t, m.DBQueryErrors.WithLabelValues("conflicts", "query")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_WithoutMetrics(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec("DELETE FROM nothing").WillReturnError(errors.New("read-only"))

	_, err = Wrap(sqlDB).ExecContext(context.Background(), "DELETE FROM nothing")
	assert.Error(t, err)
}

func TestGetExecutor(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db := Wrap(sqlDB)

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	mock.ExpectBegin()
	mock.ExpectRollback()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
