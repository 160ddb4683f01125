package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finqa-cli/internal/model"
	"github.com/sells-group/finqa-cli/internal/report"
)

func sampleReport(generatedAt time.Time) *report.Report {
	return &report.Report{
		Metadata: report.Metadata{
			GeneratedAt:    generatedAt,
			TotalQuestions: 2,
			Successful:     1,
			Model:          "rule-based",
			DataFile:       "sample_data.csv",
		},
		Results: []model.AnswerRecord{
			{Question: "q1", Answer: "a1", Status: model.StatusSuccess, Intent: "lookup", Metric: "Revenue"},
			{Question: "q2", Answer: "a2", Status: model.StatusError, Intent: "lookup"},
		},
	}
}

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "finqa.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLiteSaveAndGetReport(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	rep := sampleReport(time.Now().UTC().Truncate(time.Second))
	id, err := st.SaveReport(ctx, rep)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := st.GetReport(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rep.Metadata.TotalQuestions, got.Metadata.TotalQuestions)
	assert.Equal(t, rep.Metadata.Model, got.Metadata.Model)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "q1", got.Results[0].Question)
	assert.Equal(t, model.StatusError, got.Results[1].Status)
}

func TestSQLiteGetReportNotFound(t *testing.T) {
	st := newTestSQLite(t)

	_, err := st.GetReport(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteListRuns(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := st.SaveReport(ctx, sampleReport(base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := st.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[0], runs[2].ID)
	assert.Equal(t, 2, runs[0].TotalQuestions)
	assert.Equal(t, 1, runs[0].Successful)

	limited, err := st.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteListRunsEmpty(t *testing.T) {
	st := newTestSQLite(t)

	runs, err := st.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
