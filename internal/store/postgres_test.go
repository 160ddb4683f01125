package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finqa-cli/internal/model"
)

func newTestPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return newPostgresWithPool(mock), mock
}

func TestPostgresMigrate(t *testing.T) {
	st, mock := newTestPostgres(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS report_runs").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, st.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveReport(t *testing.T) {
	st, mock := newTestPostgres(t)
	rep := sampleReport(time.Now().UTC())

	payload, err := json.Marshal(rep)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO report_runs").
		WithArgs(pgxmock.AnyArg(), rep.Metadata.GeneratedAt, rep.Metadata.TotalQuestions, rep.Metadata.Successful, rep.Metadata.Model, payload).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := st.SaveReport(context.Background(), rep)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetReport(t *testing.T) {
	st, mock := newTestPostgres(t)
	rep := sampleReport(time.Now().UTC())

	payload, err := json.Marshal(rep)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT report FROM report_runs").
		WithArgs("run-1").
		WillReturnRows(pgxmock.NewRows([]string{"report"}).AddRow(payload))

	got, err := st.GetReport(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, rep.Metadata.Model, got.Metadata.Model)
	require.Len(t, got.Results, 2)
	assert.Equal(t, model.StatusSuccess, got.Results[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetReportNotFound(t *testing.T) {
	st, mock := newTestPostgres(t)

	mock.ExpectQuery("SELECT report FROM report_runs").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"report"}))

	_, err := st.GetReport(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPostgresListRuns(t *testing.T) {
	st, mock := newTestPostgres(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "generated_at", "total_questions", "successful", "model"}).
		AddRow("run-2", now, 3, 3, "rule-based").
		AddRow("run-1", now.Add(-time.Hour), 2, 1, "rule-based")

	mock.ExpectQuery("SELECT id, generated_at, total_questions, successful, model FROM report_runs").
		WithArgs(20).
		WillReturnRows(rows)

	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, 3, runs[0].TotalQuestions)
	assert.NoError(t, mock.ExpectationsWereMet())
}
